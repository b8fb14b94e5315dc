package progress

import (
	"github.com/cheggaaa/pb"
)

// Bar renders a terminal progress bar for a single transfer.
type Bar struct {
	bar     *pb.ProgressBar
	spinner bool
}

func NewBar() *Bar {
	return &Bar{}
}

func (b *Bar) Start(totalBytes int64) {
	if totalBytes == UnknownTotal {
		// Size unknown: count bytes without a percentage.
		b.spinner = true
		totalBytes = 0
	}
	b.bar = pb.New64(totalBytes)
	b.bar.SetUnits(pb.U_BYTES)
	b.bar.ShowSpeed = true
	if b.spinner {
		b.bar.ShowPercent = false
		b.bar.ShowBar = false
		b.bar.ShowTimeLeft = false
	}
	b.bar.Start()
}

func (b *Bar) Advance(deltaBytes int64) {
	if b.bar != nil {
		b.bar.Add64(deltaBytes)
	}
}

func (b *Bar) Message(text string) {
	if b.bar != nil {
		b.bar.Prefix(text)
	}
}

func (b *Bar) Finish(err error) {
	if b.bar != nil {
		b.bar.Finish()
	}
}

var _ Sink = &Bar{}
