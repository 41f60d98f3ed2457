package models

import "time"

type OperationLog struct {
	ID        string    `db:"id"`
	Operator  string    `db:"operator"`
	Action    string    `db:"action"`
	Target    string    `db:"target"`
	IP        string    `db:"ip"`
	CreatedAt time.Time `db:"created_at"`
}
