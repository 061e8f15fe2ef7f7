package resp

import (
	"net"
	"strconv"
	"testing"

	"github.com/gomodule/redigo/redis"

	"github.com/xtding233/sparkyrng/internal/service"
	"github.com/xtding233/sparkyrng/random"
	"github.com/xtding233/sparkyrng/xoshiro"
)

func start(t *testing.T, gen *service.Generator) redis.Conn {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() { _ = Serve(ln, gen) }()
	t.Cleanup(func() { _ = ln.Close() })

	c, err := redis.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func uintReply(t *testing.T, c redis.Conn, cmd string, args ...interface{}) uint64 {
	t.Helper()
	s, err := redis.String(c.Do(cmd, args...))
	if err != nil {
		t.Fatal(err)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func floatReply(t *testing.T, c redis.Conn, cmd string, args ...interface{}) float64 {
	t.Helper()
	s, err := redis.String(c.Do(cmd, args...))
	if err != nil {
		t.Fatal(err)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestRESPDraws(t *testing.T) {
	c := start(t, service.NewGenerator(random.NewDefault()))
	ref := random.NewDefault()

	if s, err := redis.String(c.Do("PING")); err != nil || s != "PONG" {
		t.Fatalf("PING: got %q err=%v", s, err)
	}
	if got := uintReply(t, c, "RAND.NEXT"); got != ref.Uint64() {
		t.Fatalf("RAND.NEXT: got %#x", got)
	}
	if got := uintReply(t, c, "RAND.BITS", 4); got != ref.Uint64()>>60 {
		t.Fatalf("RAND.BITS: got %#x", got)
	}
	if got, err := redis.Int64(c.Do("RAND.U32")); err != nil || uint32(got) != ref.Uint32() {
		t.Fatalf("RAND.U32: got %#x err=%v", got, err)
	}
	want, _ := ref.Uint64n(6)
	if got := uintReply(t, c, "RAND.U64", 6); got != want {
		t.Fatalf("RAND.U64: got %d want %d", got, want)
	}
	if got := floatReply(t, c, "RAND.F52"); got != ref.F52() {
		t.Fatalf("RAND.F52: got %v", got)
	}
	if got := floatReply(t, c, "RAND.F53"); got != ref.F53() {
		t.Fatalf("RAND.F53: got %v", got)
	}
	if got, err := redis.Int(c.Do("RAND.CHANCE", 1)); err != nil || got != 1 {
		t.Fatalf("RAND.CHANCE: got %d err=%v", got, err)
	}
}

func TestRESPSeedAndState(t *testing.T) {
	c := start(t, service.NewGenerator(random.New(5)))

	if s, err := redis.String(c.Do("RAND.SEED", 1, 2, 3)); err != nil || s != "OK" {
		t.Fatalf("RAND.SEED: got %q err=%v", s, err)
	}
	st, err := redis.String(c.Do("RAND.STATE"))
	if err != nil {
		t.Fatal(err)
	}
	if st != xoshiro.NewValues(1, 2, 3).State().String() {
		t.Fatalf("RAND.STATE after seed: got %s", st)
	}

	if _, err := c.Do("RAND.DISCARD", 10); err != nil {
		t.Fatal(err)
	}
	if s, err := redis.String(c.Do("RAND.STATE", st)); err != nil || s != "OK" {
		t.Fatalf("RAND.STATE set: got %q err=%v", s, err)
	}
	ref := xoshiro.NewValues(1, 2, 3)
	if got := uintReply(t, c, "RAND.NEXT"); got != ref.Uint64() {
		t.Fatalf("restored state diverged: got %#x", got)
	}
}

func TestRESPErrors(t *testing.T) {
	c := start(t, service.NewGenerator(random.NewDefault()))
	for _, args := range [][]interface{}{
		{"RAND.U64", 0},
		{"RAND.U64", "x"},
		{"RAND.U64"},
		{"RAND.BITS", 65},
		{"RAND.CHANCE", 2},
		{"RAND.SEED"},
		{"RAND.STATE", "0-0-0-0"},
		{"RAND.NOPE"},
	} {
		if _, err := c.Do(args[0].(string), args[1:]...); err == nil {
			t.Fatalf("%v: expected error reply", args)
		}
	}
	// the connection stays usable after error replies
	if s, err := redis.String(c.Do("PING")); err != nil || s != "PONG" {
		t.Fatalf("PING after errors: got %q err=%v", s, err)
	}
}
