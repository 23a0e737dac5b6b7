// Package views holds the denormalized read models shared by the query handlers and the
// fanout coordinator: an order together with the names of the people and products it
// refers to.
package views

import (
	"time"
)

type MemberView struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type ItemView struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity"`
}

type OrderView struct {
	ID         string      `json:"id"`
	Customer   MemberView  `json:"customer"`
	AssignedTo *MemberView `json:"assignedTo,omitempty"`
	Items      []ItemView  `json:"items"`
	Total      string      `json:"total"`
	Status     string      `json:"status"`
	Version    int         `json:"version"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type ProductView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
}

type DirectoryMemberView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
