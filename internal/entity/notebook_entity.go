package entity

import "time"

type Notebook struct {
	Id            string
	Name          string
	DocumentCount int
	CreatedAt     time.Time
}
