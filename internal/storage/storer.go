package storage

type Type string

const (
	ES     Type = "es"
	PG     Type = "pg"
	Memory Type = "memory"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storage type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
