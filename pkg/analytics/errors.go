package analytics

// ConnectionError reports that a session to the relational store could not be
// established (unreachable host, bad credentials, malformed connection url).
type ConnectionError struct {
	Err error
}

func (e ConnectionError) Error() string {
	return "connection error: " + e.Err.Error()
}

func (e ConnectionError) Unwrap() error {
	return e.Err
}

// QueryError reports that a query failed after a connection was established.
type QueryError struct {
	Err error
}

func (e QueryError) Error() string {
	return "query error: " + e.Err.Error()
}

func (e QueryError) Unwrap() error {
	return e.Err
}
