package repository

import "context"

// ReceiptSink stores rendered receipt and statement text and returns the
// location it was written to. The backing medium (file system, object
// storage) is a collaborator detail.
type ReceiptSink interface {
	Store(ctx context.Context, text string) (string, error)
}
