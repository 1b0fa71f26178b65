package consts

const (
	RateLimitKey = "ratelimit:ip:"
)
