package resp

// Leading bytes of the five RESP reply headers (§4.1).
const (
	typeSimpleString = '+'
	typeError        = '-'
	typeInteger      = ':'
	typeBulkString   = '$'
	typeArray        = '*'
)

const crlf = "\r\n"
