package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"
)

type result struct {
	Profile string
	Conn    int
	WallMs  int64
	Bytes   int
	Error   string
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	conns := flag.Int("conns", 20, "concurrent connections per profile")
	timeout := flag.Duration("timeout", 10*time.Second, "per-connection deadline")
	flag.Parse()

	fmt.Printf("Load test against %s (%d concurrent connections per profile)\n", *addr, *conns)

	var results []result
	var failures int
	for _, p := range Profiles {
		fmt.Printf("  Running %s...", p.Name)
		rs := runProfile(*addr, p, *conns, *timeout)
		var failed int
		for _, r := range rs {
			if r.Error != "" {
				failed++
			}
		}
		failures += failed
		results = append(results, rs...)
		fmt.Printf(" %d/%d ok\n", len(rs)-failed, len(rs))
	}

	fmt.Println()
	printTable(results)

	// The point of the exercise: the server must still answer a plain
	// request after absorbing the hostile profiles.
	fmt.Print("Liveness probe (GET /)...")
	if err := probe(*addr, *timeout); err != nil {
		fmt.Printf(" FAILED: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(" ok")

	if failures > 0 {
		fmt.Printf("\n%d connection(s) failed\n", failures)
		os.Exit(1)
	}
}

func runProfile(addr string, p Profile, conns int, timeout time.Duration) []result {
	results := make([]result, conns)
	var wg sync.WaitGroup
	for i := 0; i < conns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = runOne(addr, p, i, timeout)
		}(i)
	}
	wg.Wait()
	return results
}

func runOne(addr string, p Profile, i int, timeout time.Duration) result {
	r := result{Profile: p.Name, Conn: i}
	start := time.Now()

	payload := p.Raw
	if payload == "" {
		payload = "GET " + p.Path + " HTTP/1.1\r\n\r\n"
	}

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		r.Error = fmt.Sprintf("dial: %v", err)
		return r
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(timeout))

	if _, err := conn.Write([]byte(payload)); err != nil && !p.AllowReset {
		r.Error = fmt.Sprintf("write: %v", err)
		return r
	}

	resp, err := io.ReadAll(conn)
	r.WallMs = time.Since(start).Milliseconds()
	r.Bytes = len(resp)
	if err != nil {
		if !p.AllowReset {
			r.Error = fmt.Sprintf("read: %v", err)
		}
		return r
	}

	if err := validate(p, string(resp)); err != nil {
		r.Error = err.Error()
	}
	return r
}

func validate(p Profile, resp string) error {
	if !strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n") {
		return fmt.Errorf("not a 200 response: %.40q", resp)
	}
	_, body, ok := strings.Cut(resp, "\r\n\r\n")
	if !ok {
		return fmt.Errorf("missing header/body separator")
	}

	switch {
	case p.Path == "/":
		if !strings.Contains(body, "Hello World!") {
			return fmt.Errorf("root body %q missing greeting", body)
		}
	case p.Path != "":
		// The echoed path must be a prefix of what was sent; the server is
		// allowed to truncate, never to mangle.
		echoed, found := strings.CutPrefix(body, "Path: ")
		if !found {
			return fmt.Errorf("echo body %.40q missing prefix", body)
		}
		if !strings.HasPrefix(p.Path, echoed) {
			return fmt.Errorf("echoed path is not a prefix of the sent path")
		}
	}
	return nil
}

func probe(addr string, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return err
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(timeout))

	if _, err := conn.Write([]byte("GET / HTTP/1.1\r\n\r\n")); err != nil {
		return err
	}
	resp, err := io.ReadAll(conn)
	if err != nil {
		return err
	}
	if !strings.Contains(string(resp), "Hello World!") {
		return fmt.Errorf("unexpected body: %.60q", resp)
	}
	return nil
}

func printTable(results []result) {
	type agg struct {
		n, ok int
		sumMs int64
		maxMs int64
	}
	byProfile := map[string]*agg{}
	var order []string
	for _, r := range results {
		a := byProfile[r.Profile]
		if a == nil {
			a = &agg{}
			byProfile[r.Profile] = a
			order = append(order, r.Profile)
		}
		a.n++
		if r.Error == "" {
			a.ok++
		}
		a.sumMs += r.WallMs
		if r.WallMs > a.maxMs {
			a.maxMs = r.WallMs
		}
	}

	fmt.Printf("%-18s %6s %6s %8s %8s\n", "PROFILE", "CONNS", "OK", "AVG MS", "MAX MS")
	for _, name := range order {
		a := byProfile[name]
		fmt.Printf("%-18s %6d %6d %8d %8d\n", name, a.n, a.ok, a.sumMs/int64(a.n), a.maxMs)
	}

	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("  FAIL %s conn %d: %s\n", r.Profile, r.Conn, r.Error)
		}
	}
}
