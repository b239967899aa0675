package resp

import (
	"bufio"
	"io"
)

// DecodeReply consumes exactly one reply from r, per spec §4.1. Any
// malformed framing — an unknown leading byte, an unparsable length, a
// negative length other than -1, or a missing trailing CRLF on a bulk
// string — is reported as an error; the caller (redisconn) wraps it as a
// ProtocolError. A successful decode of a RESP error line ("-ERR ...") is
// not an error return: it comes back as a Reply with Kind == KindError.
func DecodeReply(r *bufio.Reader) (Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return Reply{}, err
	}
	if len(line) == 0 {
		return Reply{}, ErrHeaderlineEmpty
	}

	switch line[0] {
	case typeSimpleString:
		return SimpleString(string(line[1:])), nil
	case typeError:
		return Error(string(line[1:])), nil
	case typeInteger:
		v, err := parseInt(line[1:])
		if err != nil {
			return Reply{}, err
		}
		return Integer(v), nil
	case typeBulkString:
		n, err := parseInt(line[1:])
		if err != nil {
			return Reply{}, err
		}
		if n < 0 {
			if n != -1 {
				return Reply{}, ErrIntegerParsing
			}
			return NullBulkString(), nil
		}
		buf := make([]byte, n+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Reply{}, err
		}
		if buf[n] != '\r' || buf[n+1] != '\n' {
			return Reply{}, ErrNoFinalCRLF
		}
		return BulkString(buf[:n:n]), nil
	case typeArray:
		n, err := parseInt(line[1:])
		if err != nil {
			return Reply{}, err
		}
		if n < 0 {
			if n != -1 {
				return Reply{}, ErrIntegerParsing
			}
			return NullArray(), nil
		}
		items := make([]Reply, n)
		for i := range items {
			items[i], err = DecodeReply(r)
			if err != nil {
				return Reply{}, err
			}
		}
		return Array(items), nil
	default:
		return Reply{}, ErrUnknownHeaderType
	}
}

// readLine reads one CRLF-terminated header line, without the CRLF, erroring
// if bufio had to split it across reads (too large for the buffer) or if the
// line wasn't properly CRLF-terminated.
func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		return nil, ErrHeaderlineTooLarge
	}
	if err != nil {
		return nil, err
	}
	if len(line) < 2 || line[len(line)-2] != '\r' {
		return nil, ErrNoFinalCRLF
	}
	return line[:len(line)-2], nil
}

func parseInt(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, ErrIntegerParsing
	}
	neg := b[0] == '-'
	if neg {
		b = b[1:]
		if len(b) == 0 {
			return 0, ErrIntegerParsing
		}
	}
	var v int64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, ErrIntegerParsing
		}
		v = v*10 + int64(c-'0')
	}
	if neg {
		v = -v
	}
	return v, nil
}
