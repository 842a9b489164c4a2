package handlers

import (
	"context"
	"sync"
	"time"
)

// StorageHandler is the slice of the object store the upload paths need.
type StorageHandler interface {
	UploadFile(ctx context.Context, file []byte, filename string, contentType string) (string, error)
	DeleteFile(ctx context.Context, path string) error
	GetSignedURL(ctx context.Context, path string, duration time.Duration) (string, error)
}

var (
	storageHandler StorageHandler
	handlerMu      sync.RWMutex
)

// RegisterStorageHandler sets the storage handler
func RegisterStorageHandler(h StorageHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	storageHandler = h
}

// GetStorageHandler returns the registered storage handler
func GetStorageHandler() StorageHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return storageHandler
}
