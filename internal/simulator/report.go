package simulator

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
	"gopkg.in/yaml.v3"
)

// Interval is a point estimate with a confidence interval
type Interval struct {
	Estimate float64 `yaml:"estimate" json:"estimate"`
	Low      float64 `yaml:"low" json:"low"`
	High     float64 `yaml:"high" json:"high"`
}

// Report summarises a simulation. RTP is the mean fraction of the stake
// returned per round, so 1.0 is break-even.
type Report struct {
	Game       string         `yaml:"game" json:"game"`
	Title      string         `yaml:"title" json:"title"`
	Rounds     int            `yaml:"rounds" json:"rounds"`
	Workers    int            `yaml:"workers" json:"workers"`
	Bet        int            `yaml:"bet" json:"bet"`
	Seed       int64          `yaml:"seed" json:"seed"`
	Confidence float64        `yaml:"confidence" json:"confidence"`
	Wins       int            `yaml:"wins" json:"wins"`
	Losses     int            `yaml:"losses" json:"losses"`
	Wagered    int64          `yaml:"wagered" json:"wagered"`
	Net        int64          `yaml:"net" json:"net"`
	RTP        Interval       `yaml:"rtp" json:"rtp"`
	WinRate    Interval       `yaml:"win_rate" json:"winRate"`
	StdDev     float64        `yaml:"std_dev" json:"stdDev"`
	Outcomes   map[string]int `yaml:"outcomes" json:"outcomes"`
	Elapsed    string         `yaml:"elapsed" json:"elapsed"`
}

// Output formats
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Write renders the report in the given format
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case FormatText, "":
		return r.writeText(w)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return fmt.Errorf("unknown report format %q", format)
}

func (r *Report) writeText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d rounds at %d tokens (%d workers, %s)\n", r.Title, r.Rounds, r.Bet, r.Workers, r.Elapsed)
	fmt.Fprintf(&b, "  RTP       %6.2f%%  [%.2f%%, %.2f%%] at %.0f%%\n",
		r.RTP.Estimate*100, r.RTP.Low*100, r.RTP.High*100, r.Confidence*100)
	fmt.Fprintf(&b, "  Win rate  %6.2f%%  [%.2f%%, %.2f%%]\n",
		r.WinRate.Estimate*100, r.WinRate.Low*100, r.WinRate.High*100)
	fmt.Fprintf(&b, "  Net       %+d of %d wagered\n", r.Net, r.Wagered)

	labels := make([]string, 0, len(r.Outcomes))
	for k := range r.Outcomes {
		labels = append(labels, k)
	}
	slices.SortFunc(labels, func(a, b string) int {
		if d := r.Outcomes[b] - r.Outcomes[a]; d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	b.WriteString("  Outcomes\n")
	for _, k := range labels {
		fmt.Fprintf(&b, "    %-28s %8d  %6.2f%%\n", k, r.Outcomes[k], 100*float64(r.Outcomes[k])/float64(r.Rounds))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// meanCI returns the two-sided Student's t interval for a sample mean
func meanCI(mean, sd float64, n int, confidence float64) (float64, float64) {
	if n < 2 || sd == 0 {
		return mean, mean
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	margin := t.Quantile(0.5+confidence/2) * sd / math.Sqrt(float64(n))
	return mean - margin, mean + margin
}

// proportionCI returns the Clopper-Pearson interval for k successes in n
func proportionCI(k, n int, confidence float64) (float64, float64) {
	if n == 0 {
		return 0, 1
	}
	alpha := 1 - confidence
	lo, hi := 0.0, 1.0
	if k > 0 {
		lo = distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}.Quantile(alpha / 2)
	}
	if k < n {
		hi = distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}.Quantile(1 - alpha/2)
	}
	return lo, hi
}
