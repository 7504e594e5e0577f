package domain

import "time"

// Customer представляет клиента, на которого оформляются заказы.
type Customer struct {
	// ID — серверный идентификатор, неизменяемый после создания.
	ID string
	// Name — имя клиента, не может быть пустым.
	Name string
	// Email — синтаксически корректный адрес электронной почты.
	Email string
	// Address — необязательный почтовый адрес.
	Address string
	// CreatedAt фиксируется один раз при создании.
	CreatedAt time.Time
}
