// Package authz реализует правила ролевого доступа.
//
// Модель двухуровневая: admin проходит любое требование, обычный пользователь —
// только требование своей роли. Функция чистая и не зависит от контекста запроса,
// чтобы её можно было проверять без HTTP-обвязки.
package authz

import "github.com/magabrotheeeer/account-service/internal/models"

// Allowed сообщает, удовлетворяет ли роль вызывающего требуемой роли.
func Allowed(required, caller string) bool {
	if caller == models.RoleAdmin {
		return true
	}
	return required == caller
}
