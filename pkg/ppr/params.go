package ppr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/vertex-lab/ssppr/pkg/models"
)

const (
	DefaultEps        = 0.1
	DefaultRmax       = 1e-4
	DefaultRWNum      = 1000
	DefaultPiNum      = 10
	DefaultSampleSize = 100
	DefaultBatchSize  = 10
)

// Params groups the parameters of all the estimation methods. Each method only reads the ones it needs.
type Params struct {
	Alpha float64 `mapstructure:"alpha" toml:"alpha"`

	// relative error, minimum ppr and failure probability (fora, speedppr)
	Eps   float64 `mapstructure:"eps" toml:"eps"`
	Delta float64 `mapstructure:"delta" toml:"delta"`
	Pf    float64 `mapstructure:"pf" toml:"pf"`

	// residual threshold (forwardpush, fora_skeleton)
	Rmax float64 `mapstructure:"rmax" toml:"rmax"`

	// walks (rw, fora_skeleton)
	RWNum int `mapstructure:"rw_num" toml:"rw_num"`

	// power iterations, samples and batches (ppw)
	PiNum      int `mapstructure:"pi_num" toml:"pi_num"`
	SampleSize int `mapstructure:"sample_size" toml:"sample_size"`
	BatchSize  int `mapstructure:"batch_size" toml:"batch_size"`
}

// WithDefaults() returns a copy of the params where every zero field (except alpha)
// is replaced by its default for a graph with n nodes.
func (p Params) WithDefaults(n int) Params {
	if p.Eps == 0 {
		p.Eps = DefaultEps
	}

	if p.Delta == 0 && n > 0 {
		p.Delta = 1.0 / float64(n)
	}

	if p.Pf == 0 && n > 0 {
		p.Pf = 1.0 / float64(n)
	}

	if p.Rmax == 0 {
		p.Rmax = DefaultRmax
	}

	if p.RWNum == 0 {
		p.RWNum = DefaultRWNum
	}

	if p.PiNum == 0 {
		p.PiNum = DefaultPiNum
	}

	if p.SampleSize == 0 {
		p.SampleSize = DefaultSampleSize
	}

	if p.BatchSize == 0 {
		p.BatchSize = DefaultBatchSize
	}

	return p
}

// Validate() returns an error that lists every invalid field, and wraps models.ErrInvalidArgument.
func (p Params) Validate() error {
	var err error
	if !(p.Alpha > 0 && p.Alpha <= 1) {
		err = multierror.Append(err, fmt.Errorf("%w: alpha must be in (0,1], got %v", models.ErrInvalidArgument, p.Alpha))
	}

	if budgetErr := p.validateBudget(); budgetErr != nil {
		err = multierror.Append(err, budgetErr)
	}

	if !(p.Rmax > 0) || math.IsInf(p.Rmax, 1) {
		err = multierror.Append(err, fmt.Errorf("%w: rmax must be positive and finite, got %v", models.ErrInvalidArgument, p.Rmax))
	}

	if p.RWNum < 1 {
		err = multierror.Append(err, fmt.Errorf("%w: rw_num must be positive, got %d", models.ErrInvalidArgument, p.RWNum))
	}

	if p.PiNum < 1 {
		err = multierror.Append(err, fmt.Errorf("%w: pi_num must be positive, got %d", models.ErrInvalidArgument, p.PiNum))
	}

	if p.SampleSize < 1 {
		err = multierror.Append(err, fmt.Errorf("%w: sample_size must be positive, got %d", models.ErrInvalidArgument, p.SampleSize))
	}

	if p.BatchSize < 1 {
		err = multierror.Append(err, fmt.Errorf("%w: batch_size must be positive, got %d", models.ErrInvalidArgument, p.BatchSize))
	}

	return err
}

// validateBudget() validates the parameters of WalkBudget.
func (p Params) validateBudget() error {
	var err error
	if !(p.Eps > 0) || math.IsInf(p.Eps, 1) {
		err = multierror.Append(err, fmt.Errorf("%w: eps must be positive and finite, got %v", models.ErrInvalidArgument, p.Eps))
	}

	if !(p.Delta > 0 && p.Delta <= 1) {
		err = multierror.Append(err, fmt.Errorf("%w: delta must be in (0,1], got %v", models.ErrInvalidArgument, p.Delta))
	}

	if !(p.Pf > 0 && p.Pf <= 1) {
		err = multierror.Append(err, fmt.Errorf("%w: pf must be in (0,1], got %v", models.ErrInvalidArgument, p.Pf))
	}

	return err
}

// Key() returns a string that identifies the estimation of source on the named graph
// with the method and the parameters it reads, e.g. "ppr:karate:0:fora:alpha=0.2:eps=0.1:delta=0.03:pf=0.03".
func (p Params) Key(graphName string, source uint32, method Method) string {
	fields := []string{"ppr", graphName, strconv.FormatUint(uint64(source), 10), string(method), "alpha=" + formatFloat(p.Alpha)}

	switch method {
	case MethodForwardPush:
		fields = append(fields, "rmax="+formatFloat(p.Rmax))

	case MethodRandomWalk:
		fields = append(fields, "rw_num="+strconv.Itoa(p.RWNum))

	case MethodForaSkeleton:
		fields = append(fields, "rmax="+formatFloat(p.Rmax), "rw_num="+strconv.Itoa(p.RWNum))

	case MethodFora, MethodSpeedPPR:
		fields = append(fields, "eps="+formatFloat(p.Eps), "delta="+formatFloat(p.Delta), "pf="+formatFloat(p.Pf))

	case MethodPPW:
		fields = append(fields, "pi_num="+strconv.Itoa(p.PiNum), "sample_size="+strconv.Itoa(p.SampleSize), "batch_size="+strconv.Itoa(p.BatchSize))
	}

	return strings.Join(fields, ":")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
