package domain

import "time"

// Principal — локальная запись каталога пользователей. Аутентификацией и
// жизненным циклом учётных записей владеет внешний identity-сервис.
type Principal struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DisplayName возвращает идентификатор для отображения в списках и агенде.
func (p *Principal) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return p.Email
}
