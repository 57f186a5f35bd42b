package cli

import (
	"bytes"
	"io"
	"os"
)

// captureOutput runs f with os.Stdout redirected and returns what it wrote.
func captureOutput(f func()) string {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	defer func() { os.Stdout = orig }()
	f()
	w.Close()

	return <-done
}
