// Command sysmon renders live CPU and memory usage as bar graphs on a
// simulated 160x80 RGB565 panel.
package main

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"

	"egsim"
	"egsim/window"
)

const (
	panelWidth  = 160
	panelHeight = 80
)

var (
	background = color.RGBA{R: 8, G: 16, B: 32, A: 255}
	barColor   = color.RGBA{R: 0, G: 200, B: 120, A: 255}
	hotColor   = color.RGBA{R: 230, G: 80, B: 40, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

type sample struct {
	perCPU  []float64
	memUsed float64
}

func main() {
	scale := flag.Int("scale", 3, "Output pixels per display pixel.")
	interval := flag.Duration("interval", time.Second, "Sampling interval.")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	d := egsim.NewDisplay[egsim.RGB565](panelWidth, panelHeight)
	w := window.New("System Monitor", egsim.NewSettings(
		egsim.WithScale(*scale),
	), window.WithLogger(log))

	var (
		cur      sample
		lastPoll time.Time
	)

	err = w.Run(func(w *window.Window) error {
		w.Events()

		if time.Since(lastPoll) >= *interval {
			s, err := poll()
			if err != nil {
				log.Warn("sampling failed", zap.Error(err))
			} else {
				cur = s
			}
			lastPoll = time.Now()
		}

		drawPanel(d, cur)
		w.Update(d)
		return nil
	})
	if err != nil {
		log.Error("window failed", zap.Error(err))
		os.Exit(1)
	}
}

func poll() (sample, error) {
	perCPU, err := cpu.Percent(0, true)
	if err != nil {
		return sample{}, err
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return sample{}, err
	}
	return sample{perCPU: perCPU, memUsed: vm.UsedPercent}, nil
}

func drawPanel(d *egsim.Display[egsim.RGB565], s sample) {
	fill := egsim.NewColor[egsim.RGB565](background.R, background.G, background.B)
	d.FillSolid(d.Bounds(), fill)

	tinyfont.WriteLine(d, &tinyfont.Org01, 4, 8, "CPU", textColor)
	barTop := int16(12)
	barHeight := int16(40)
	if len(s.perCPU) > 0 {
		barWidth := int16((panelWidth - 8) / len(s.perCPU))
		for i, pct := range s.perCPU {
			h := int16(pct / 100 * float64(barHeight))
			c := barColor
			if pct > 85 {
				c = hotColor
			}
			x := 4 + int16(i)*barWidth
			tinydraw.FilledRectangle(d, x, barTop+barHeight-h, barWidth-1, h, c)
			tinydraw.Rectangle(d, x, barTop, barWidth-1, barHeight, textColor)
		}
	}

	label := fmt.Sprintf("MEM %3.0f%%", s.memUsed)
	tinyfont.WriteLine(d, &tinyfont.Org01, 4, 64, label, textColor)
	memWidth := int16(s.memUsed / 100 * (panelWidth - 8))
	tinydraw.FilledRectangle(d, 4, 68, memWidth, 8, barColor)
	tinydraw.Rectangle(d, 4, 68, panelWidth-8, 8, textColor)
}
