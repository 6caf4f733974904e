package models

import "time"

// TransactionTypeDeposit - пополнение баланса картой
const TransactionTypeDeposit = "deposit"

// Transaction представляет операцию по балансу пользователя.
// Локально не хранится, список приходит с бэкенда (новые сверху).
type Transaction struct {
	ID         string    `json:"_id"`
	Type       string    `json:"type"`
	Amount     int64     `json:"amount"`
	CardType   string    `json:"cardType,omitempty"`
	CardNumber string    `json:"cardNumber,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IsDeposit сообщает, является ли операция пополнением
func (t *Transaction) IsDeposit() bool {
	return t.Type == TransactionTypeDeposit
}
