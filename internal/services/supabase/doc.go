// Package supabase is a thin client for the hosted backend's administrative
// surfaces: the auth admin API, the SQL RPC endpoint, and the REST row
// interface. It authenticates every call with the service-role key.
package supabase
