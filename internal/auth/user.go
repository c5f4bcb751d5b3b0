package auth

type contextKey string

const accountIDContextKey contextKey = "account_id"
