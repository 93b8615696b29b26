package store

// HealthStore abstracts the status check.
type HealthStore interface {
	Ping() error
}
