package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xtding233/sparkyrng/internal/logger"
	"github.com/xtding233/sparkyrng/internal/stats"
	"github.com/xtding233/sparkyrng/xoshiro"
)

type wordResp struct {
	Value uint64 `json:"value,string"`
}

type u32Resp struct {
	Value uint32 `json:"value"`
}

type pairResp struct {
	Lo uint32 `json:"lo"`
	Hi uint32 `json:"hi"`
}

type floatResp struct {
	Value float64 `json:"value"`
}

type chanceResp struct {
	Hit bool `json:"hit"`
}

type stateResp struct {
	State string `json:"state"`
}

type errResp struct {
	Err string `json:"err"`
}

// selfTestResp adds the verdict at the default significance level and a
// summary of F53 draws from the same starting state.
type selfTestResp struct {
	stats.Uniformity
	Alpha  float64       `json:"alpha"`
	Reject bool          `json:"reject"`
	F53    stats.Summary `json:"f53"`
}

const (
	defaultSelfTestK = 6
	defaultSelfTestN = 60000
	selfTestAlpha    = 0.01
)

// Handler serves the generator over HTTP with JSON responses.
func Handler(g *Generator) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /next", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, wordResp{Value: g.Next()})
	})
	mux.HandleFunc("GET /bits", func(w http.ResponseWriter, r *http.Request) {
		b := 64
		if s := r.URL.Query().Get("b"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				writeErr(w, http.StatusBadRequest, errors.New("invalid b"))
				return
			}
			b = v
		}
		v, err := g.Bits(b)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, wordResp{Value: v})
	})
	mux.HandleFunc("GET /u32", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, u32Resp{Value: g.Uint32()})
	})
	mux.HandleFunc("GET /u32pair", func(w http.ResponseWriter, r *http.Request) {
		lo, hi := g.Uint32Pair()
		writeJSON(w, http.StatusOK, pairResp{Lo: lo, Hi: hi})
	})
	mux.HandleFunc("GET /u64", func(w http.ResponseWriter, r *http.Request) {
		bound, ok, msg := parseUint(r, "max")
		if !ok || msg != "" {
			writeErr(w, http.StatusBadRequest, errors.New(orMissing(msg, "max")))
			return
		}
		v, err := g.Uint64n(bound)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, wordResp{Value: v})
	})
	mux.HandleFunc("GET /f52", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, floatResp{Value: g.F52()})
	})
	mux.HandleFunc("GET /f53", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, floatResp{Value: g.F53()})
	})
	mux.HandleFunc("GET /chance", func(w http.ResponseWriter, r *http.Request) {
		s := r.URL.Query().Get("p")
		if s == "" {
			writeErr(w, http.StatusBadRequest, errors.New("missing param p"))
			return
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			writeErr(w, http.StatusBadRequest, errors.New("invalid p"))
			return
		}
		hit, err := g.Chance(p)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, chanceResp{Hit: hit})
	})
	mux.HandleFunc("GET /state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stateResp{State: g.State().String()})
	})
	mux.HandleFunc("POST /state", func(w http.ResponseWriter, r *http.Request) {
		s, err := xoshiro.ParseState(r.URL.Query().Get("value"))
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		if err := g.SetState(s); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, stateResp{State: s.String()})
	})
	mux.HandleFunc("POST /seed", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if seq := q.Get("sequence"); seq != "" {
			values, err := parseUintList(seq)
			if err != nil {
				writeErr(w, http.StatusBadRequest, err)
				return
			}
			s, err := g.SeedValues(values...)
			if err != nil {
				writeErr(w, http.StatusBadRequest, err)
				return
			}
			logger.Info().Int("values", len(values)).Msg("reseeded from sequence")
			writeJSON(w, http.StatusOK, stateResp{State: s.String()})
			return
		}
		seed, ok, msg := parseUint(r, "value")
		if !ok || msg != "" {
			writeErr(w, http.StatusBadRequest, errors.New(orMissing(msg, "value")))
			return
		}
		s := g.Seed(seed)
		logger.Info().Uint64("seed", seed).Msg("reseeded")
		writeJSON(w, http.StatusOK, stateResp{State: s.String()})
	})
	mux.HandleFunc("POST /discard", func(w http.ResponseWriter, r *http.Request) {
		n, ok, msg := parseUint(r, "n")
		if !ok || msg != "" {
			writeErr(w, http.StatusBadRequest, errors.New(orMissing(msg, "n")))
			return
		}
		if err := g.Discard(n); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, stateResp{State: g.State().String()})
	})
	mux.HandleFunc("GET /selftest", func(w http.ResponseWriter, r *http.Request) {
		k, n := uint64(defaultSelfTestK), defaultSelfTestN
		if v, ok, msg := parseUint(r, "k"); msg != "" {
			writeErr(w, http.StatusBadRequest, errors.New(msg))
			return
		} else if ok {
			k = v
		}
		if v, ok, msg := parseUint(r, "n"); msg != "" {
			writeErr(w, http.StatusBadRequest, errors.New(msg))
			return
		} else if ok {
			n = int(min(v, MaxSelfTestSamples+1))
		}
		start := time.Now()
		u, err := g.SelfTest(k, n)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		f, err := g.FloatSummary(min(n, MaxSummarySamples))
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		reject := u.Reject(selfTestAlpha)
		logger.Info().Uint64("k", k).Int("n", n).Float64("p", u.PValue).Bool("reject", reject).
			Float64("f53_mean", f.Mean).Dur("dur", time.Since(start)).Msg("self test")
		writeJSON(w, http.StatusOK, selfTestResp{Uniformity: u, Alpha: selfTestAlpha, Reject: reject, F53: f})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errResp{Err: err.Error()})
}

func orMissing(msg, key string) string {
	if msg != "" {
		return msg
	}
	return "missing param " + key
}

func parseUint(r *http.Request, key string) (uint64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseUintList(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 0, 64)
		if err != nil {
			return nil, errors.New("invalid sequence")
		}
		out = append(out, v)
	}
	return out, nil
}
