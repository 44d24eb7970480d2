package client

import (
	"context"
)

// Item is an item as the server returns it.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Client is the contract the CLI uses to talk to the items server.
type Client interface {
	Login(ctx context.Context, email, password string) error
	Logout()
	Me(ctx context.Context) (string, error)
	ListItems(ctx context.Context) ([]Item, error)
	CreateItem(ctx context.Context, name, description string) (*Item, error)
	UpdateItem(ctx context.Context, id int64, name, description string) (*Item, error)
	DeleteItem(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
