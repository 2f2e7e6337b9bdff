package restdoc

// Test-only exports for internal functions.
var (
	MuxPattern      = muxPattern
	StatusCode      = statusCode
	Pretty          = pretty
	EncodeJSON      = encodeJSON
	ParamSchema     = paramSchema
	RetryAfter      = retryAfter
	DeclarationBase = declarationBase
)
