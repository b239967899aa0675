package fakeredis

import (
	"strconv"
	"strings"
	"sync"

	"github.com/icinga/icingadb-redis/resp"
)

// Store is a minimal in-memory keyspace: just enough command coverage
// (PING, AUTH, SELECT, ECHO, SET, GET, INCR) to drive the end-to-end
// scenarios redisconn's tests exercise. It is deliberately not a redis
// clone — anything beyond that command set is an error reply.
type Store struct {
	mu       sync.Mutex
	data     map[string][]byte
	password string
}

// NewStore builds a Store. An empty password means AUTH always succeeds.
func NewStore(password string) *Store {
	return &Store{data: make(map[string][]byte), password: password}
}

func (s *Store) Handle(args [][]byte) resp.Reply {
	if len(args) == 0 {
		return resp.Error("ERR empty command")
	}
	switch strings.ToUpper(string(args[0])) {
	case "PING":
		return resp.SimpleString("PONG")
	case "AUTH":
		if len(args) != 2 {
			return resp.Error("ERR wrong number of arguments for 'auth' command")
		}
		if s.password != "" && string(args[1]) != s.password {
			return resp.Error("ERR invalid password")
		}
		return resp.SimpleString("OK")
	case "SELECT":
		return resp.SimpleString("OK")
	case "ECHO":
		if len(args) != 2 {
			return resp.Error("ERR wrong number of arguments for 'echo' command")
		}
		return resp.BulkString(args[1])
	case "SET":
		if len(args) != 3 {
			return resp.Error("ERR wrong number of arguments for 'set' command")
		}
		s.mu.Lock()
		s.data[string(args[1])] = args[2]
		s.mu.Unlock()
		return resp.SimpleString("OK")
	case "GET":
		if len(args) != 2 {
			return resp.Error("ERR wrong number of arguments for 'get' command")
		}
		s.mu.Lock()
		v, ok := s.data[string(args[1])]
		s.mu.Unlock()
		if !ok {
			return resp.NullBulkString()
		}
		return resp.BulkString(v)
	case "INCR":
		if len(args) != 2 {
			return resp.Error("ERR wrong number of arguments for 'incr' command")
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		key := string(args[1])
		n, _ := strconv.ParseInt(string(s.data[key]), 10, 64)
		n++
		s.data[key] = []byte(strconv.FormatInt(n, 10))
		return resp.Integer(n)
	default:
		return resp.Error("ERR unknown command '" + string(args[0]) + "'")
	}
}
