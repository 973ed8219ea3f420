package infra

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// WriterSink implementa domain.StatusSink escrevendo uma linha por mensagem.
//
// Falha de escrita é fatal: chama onError, que por padrão é log.Fatalf
// (processo sai com status != 0).
type WriterSink struct {
	mu      sync.Mutex
	w       *bufio.Writer
	closer  io.Closer
	onError func(error)
}

type SinkOption func(*WriterSink)

// WithOnError troca a reação a erro de escrita (útil em testes).
func WithOnError(fn func(error)) SinkOption {
	return func(s *WriterSink) { s.onError = fn }
}

func NewWriterSink(w io.Writer, opts ...SinkOption) *WriterSink {
	s := &WriterSink{
		w:       bufio.NewWriter(w),
		onError: func(err error) { log.Fatalf("%v", err) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStdoutSink escreve em os.Stdout.
func NewStdoutSink(opts ...SinkOption) *WriterSink {
	return NewWriterSink(os.Stdout, opts...)
}

// NewFileSink cria (ou trunca) o arquivo e escreve nele. Feche com Close.
func NewFileSink(path string, opts ...SinkOption) (*WriterSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open status file: %w", err)
	}
	s := NewWriterSink(f, opts...)
	s.closer = f
	return s, nil
}

// Write grava a mensagem e faz flush a cada linha.
func (s *WriterSink) Write(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.w.WriteString(message + "\n")
	if err == nil {
		err = s.w.Flush()
	}
	if err != nil {
		s.onError(fmt.Errorf("status sink write: %w", err))
	}
}

func (s *WriterSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.w.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
