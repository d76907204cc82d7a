// Package repository содержит хранилища именованных коллекций записей: файловое и PostgreSQL.
package repository

import "errors"

// ErrCollectionNotFound возвращается, если коллекция ещё ни разу не сохранялась.
var ErrCollectionNotFound = errors.New("collection not found")

// emptyCollection хранится для коллекции без записей.
var emptyCollection = []byte("[]")
