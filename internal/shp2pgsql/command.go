// Package shp2pgsql runs the PostGIS shp2pgsql utility and captures the SQL
// it generates. The utility is the only component that reads the shapefile;
// this package never opens the file itself, so a missing or malformed file
// surfaces as the utility's own error output and exit status.
package shp2pgsql

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/vvka-141/shpload/pkg/shpload"
)

// Runner implements shpload.Converter by shelling out to shp2pgsql.
type Runner struct {
	binary string
	logger shpload.Logger
}

// NewRunner creates a Runner. The binary defaults to shp2pgsql and can be
// overridden via SHPLOAD_CONVERTER (used by tests and non-standard installs).
func NewRunner(logger shpload.Logger) *Runner {
	if logger == nil {
		panic("logger cannot be nil")
	}

	binary := shpload.DefaultConverterBinary
	if custom := os.Getenv("SHPLOAD_CONVERTER"); custom != "" {
		binary = custom
	}

	return &Runner{binary: binary, logger: logger}
}

// Args builds the shp2pgsql argument list for a request.
//
// The projection flag takes exactly one of two forms:
//   - "-s SRC"      when no target projection is set (no reprojection)
//   - "-s SRC:TGT"  when a target projection is set
//
// Creation mode is the utility's default: the table is created by the
// generated script, the preceding drop step having cleared any old one.
func Args(req *shpload.LoadRequest) []string {
	srid := strconv.Itoa(req.SourceSRID)
	if req.Reprojects() {
		srid = srid + ":" + strconv.Itoa(req.TargetSRID)
	}

	return []string{"-s", srid, req.ShapefilePath, req.QualifiedTable()}
}

// Convert runs the utility and returns the generated SQL. The utility's
// stderr is passed through so the operator sees its progress and error text
// verbatim. A non-zero exit status is wrapped so callers can both classify
// the failure and propagate the original code.
func (r *Runner) Convert(ctx context.Context, req *shpload.LoadRequest) ([]byte, error) {
	args := Args(req)
	r.logger.Verbose("running %s %v", r.binary, args)

	cmd := exec.CommandContext(ctx, r.binary, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s exited with status %d: %w: %w",
				r.binary, exitErr.ExitCode(), shpload.ErrConversionFailed, exitErr)
		}
		// The binary could not be started at all (not installed, not
		// executable). Distinguished from a bad shapefile so the operator
		// is pointed at the environment, not the data.
		return nil, fmt.Errorf("failed to run %s (is PostGIS installed?): %w: %w",
			r.binary, shpload.ErrConverterNotFound, err)
	}

	return stdout.Bytes(), nil
}
