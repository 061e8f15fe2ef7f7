// Package resp serves the shared generator over the redis protocol, so any
// redis client can draw from it:
//
//	RAND.NEXT | RAND.BITS b | RAND.U32 | RAND.U64 max | RAND.F52 | RAND.F53
//	RAND.CHANCE p | RAND.SEED v [v ...] | RAND.DISCARD n | RAND.STATE [state]
//
// 64-bit results are bulk strings in decimal since RESP integers are signed.
package resp

import (
	"net"
	"strconv"
	"strings"

	"github.com/tidwall/redcon"

	"github.com/xtding233/sparkyrng/internal/logger"
	"github.com/xtding233/sparkyrng/internal/service"
	"github.com/xtding233/sparkyrng/xoshiro"
)

// Serve accepts connections on ln until it is closed.
func Serve(ln net.Listener, gen *service.Generator) error {
	return redcon.Serve(ln,
		func(conn redcon.Conn, cmd redcon.Command) {
			handle(gen, conn, cmd)
		},
		func(conn redcon.Conn) bool {
			logger.Debug().Str("remote", conn.RemoteAddr()).Msg("resp accept")
			return true
		},
		func(conn redcon.Conn, err error) {
			if err != nil {
				logger.Debug().Str("remote", conn.RemoteAddr()).Err(err).Msg("resp closed")
			}
		},
	)
}

func handle(gen *service.Generator, conn redcon.Conn, cmd redcon.Command) {
	args := cmd.Args
	name := strings.ToUpper(string(args[0]))
	switch name {
	case "PING":
		if len(args) > 1 {
			conn.WriteBulk(args[1])
			return
		}
		conn.WriteString("PONG")
	case "QUIT":
		conn.WriteString("OK")
		conn.Close()
	case "RAND.NEXT":
		if !arity(conn, args, 1) {
			return
		}
		writeUint(conn, gen.Next())
	case "RAND.BITS":
		if !arity(conn, args, 2) {
			return
		}
		b, err := strconv.Atoi(string(args[1]))
		if err != nil {
			conn.WriteError("ERR invalid bit width")
			return
		}
		v, err := gen.Bits(b)
		if err != nil {
			conn.WriteError("ERR " + err.Error())
			return
		}
		writeUint(conn, v)
	case "RAND.U32":
		if !arity(conn, args, 1) {
			return
		}
		conn.WriteInt64(int64(gen.Uint32()))
	case "RAND.U64":
		if !arity(conn, args, 2) {
			return
		}
		n, ok := parseUint(conn, args[1])
		if !ok {
			return
		}
		v, err := gen.Uint64n(n)
		if err != nil {
			conn.WriteError("ERR " + err.Error())
			return
		}
		writeUint(conn, v)
	case "RAND.F52":
		if !arity(conn, args, 1) {
			return
		}
		writeFloat(conn, gen.F52())
	case "RAND.F53":
		if !arity(conn, args, 1) {
			return
		}
		writeFloat(conn, gen.F53())
	case "RAND.CHANCE":
		if !arity(conn, args, 2) {
			return
		}
		p, err := strconv.ParseFloat(string(args[1]), 64)
		if err != nil {
			conn.WriteError("ERR invalid probability")
			return
		}
		hit, err := gen.Chance(p)
		if err != nil {
			conn.WriteError("ERR " + err.Error())
			return
		}
		if hit {
			conn.WriteInt(1)
		} else {
			conn.WriteInt(0)
		}
	case "RAND.SEED":
		if len(args) < 2 {
			conn.WriteError("ERR wrong number of arguments for '" + strings.ToLower(name) + "' command")
			return
		}
		values := make([]uint64, 0, len(args)-1)
		for _, a := range args[1:] {
			v, ok := parseUint(conn, a)
			if !ok {
				return
			}
			values = append(values, v)
		}
		if _, err := gen.SeedValues(values...); err != nil {
			conn.WriteError("ERR " + err.Error())
			return
		}
		logger.Info().Int("values", len(values)).Msg("reseeded over resp")
		conn.WriteString("OK")
	case "RAND.DISCARD":
		if !arity(conn, args, 2) {
			return
		}
		n, ok := parseUint(conn, args[1])
		if !ok {
			return
		}
		if err := gen.Discard(n); err != nil {
			conn.WriteError("ERR " + err.Error())
			return
		}
		conn.WriteString("OK")
	case "RAND.STATE":
		switch len(args) {
		case 1:
			conn.WriteBulkString(gen.State().String())
		case 2:
			s, err := xoshiro.ParseState(string(args[1]))
			if err == nil {
				err = gen.SetState(s)
			}
			if err != nil {
				conn.WriteError("ERR " + err.Error())
				return
			}
			conn.WriteString("OK")
		default:
			conn.WriteError("ERR wrong number of arguments for 'rand.state' command")
		}
	default:
		conn.WriteError("ERR unknown command '" + string(args[0]) + "'")
	}
}

func arity(conn redcon.Conn, args [][]byte, n int) bool {
	if len(args) != n {
		conn.WriteError("ERR wrong number of arguments for '" + strings.ToLower(string(args[0])) + "' command")
		return false
	}
	return true
}

func parseUint(conn redcon.Conn, arg []byte) (uint64, bool) {
	v, err := strconv.ParseUint(string(arg), 10, 64)
	if err != nil {
		conn.WriteError("ERR value is not an unsigned integer or out of range")
		return 0, false
	}
	return v, true
}

func writeUint(conn redcon.Conn, v uint64) {
	conn.WriteBulkString(strconv.FormatUint(v, 10))
}

func writeFloat(conn redcon.Conn, f float64) {
	conn.WriteBulkString(strconv.FormatFloat(f, 'g', -1, 64))
}
