package resp

import "strconv"

// AppendReply serializes r onto buf in wire format, the inverse of
// DecodeReply. It exists for anything that needs to speak RESP as a
// server rather than a client — internal/fakeredis is the only caller in
// this module, but the operation belongs on the codec, not on the test
// helper.
func AppendReply(buf []byte, r Reply) []byte {
	switch r.Kind {
	case KindSimpleString:
		buf = append(buf, typeSimpleString)
		buf = append(buf, r.Str...)
		return append(buf, crlf...)
	case KindError:
		buf = append(buf, typeError)
		buf = append(buf, r.Str...)
		return append(buf, crlf...)
	case KindInteger:
		buf = append(buf, typeInteger)
		buf = strconv.AppendInt(buf, r.Int, 10)
		return append(buf, crlf...)
	case KindBulkString:
		buf = append(buf, typeBulkString)
		if r.Null {
			buf = append(buf, '-', '1')
			return append(buf, crlf...)
		}
		buf = strconv.AppendInt(buf, int64(len(r.Bulk)), 10)
		buf = append(buf, crlf...)
		buf = append(buf, r.Bulk...)
		return append(buf, crlf...)
	case KindArray:
		buf = append(buf, typeArray)
		if r.Null {
			buf = append(buf, '-', '1')
			return append(buf, crlf...)
		}
		buf = strconv.AppendInt(buf, int64(len(r.Array)), 10)
		buf = append(buf, crlf...)
		for _, item := range r.Array {
			buf = AppendReply(buf, item)
		}
		return buf
	default:
		return buf
	}
}
