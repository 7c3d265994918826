package image

import (
	"go.uber.org/zap"
	"sync"
	"widescreen/converter/image/format"
)

var (
	lock           = &sync.Mutex{}
	singleInstance *Strategy
)

type Strategy struct {
	m map[Backend]Processor
}

func MustStrategy(logger *zap.Logger) *Strategy {
	lock.Lock()
	defer lock.Unlock()

	if singleInstance != nil {
		return singleInstance
	}

	singleInstance = &Strategy{m: map[Backend]Processor{
		NATIVE: format.MustNative(logger),
		VIPS:   format.MustVips(logger),
	}}

	return singleInstance
}

// Apply falls back to the native processor for unknown backends.
func (s *Strategy) Apply(b Backend) Processor {
	if p, ok := s.m[b]; ok {
		return p
	}
	return s.m[NATIVE]
}
