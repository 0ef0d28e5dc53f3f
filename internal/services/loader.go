// Package services contains the load orchestration: a fixed, ordered
// sequence of named steps driven against one database session.
package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/shpload/pkg/shpload"
)

// LoadService drives the drop/create/import sequence for one LoadRequest.
//
// Thread-Safety: NOT safe for concurrent Load() calls on the same instance.
// Create separate instances for concurrent loads.
type LoadService struct {
	connectorFactory func(*shpload.ConnectionConfig) (shpload.Connector, error)
	converter        shpload.Converter
	logger           shpload.Logger
}

// NewLoadService creates a LoadService with all dependencies injected.
//
// Panics on nil dependencies: these are programmer errors that should fail
// loudly at startup, not surface as nil dereferences mid-load.
func NewLoadService(
	connectorFactory func(*shpload.ConnectionConfig) (shpload.Connector, error),
	converter shpload.Converter,
	logger shpload.Logger,
) *LoadService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if converter == nil {
		panic("converter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &LoadService{
		connectorFactory: connectorFactory,
		converter:        converter,
		logger:           logger,
	}
}

// step is one named unit of the load sequence.
type step struct {
	name string
	run  func(ctx context.Context) error
}

// Load validates the request, connects, and runs the three steps in order:
//
//  1. drop table   - DROP TABLE IF EXISTS schema.table
//  2. create schema - CREATE SCHEMA IF NOT EXISTS schema
//  3. import       - run the conversion utility and execute its SQL
//
// The sequence is best-effort, not transactional: the first failing step
// aborts the rest and its error names the step. A failure can leave the
// schema present without the table; re-running the same request repeats all
// steps and converges to the same end state. No step is retried.
func (s *LoadService) Load(ctx context.Context, connConfig *shpload.ConnectionConfig, req *shpload.LoadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return fmt.Errorf("database connection failed: %w: %w", shpload.ErrConnectionFailed, err)
	}
	defer pool.Close()

	return s.runSteps(ctx, pool, req)
}

// runSteps executes the fixed step sequence on an established connection.
// Split out so tests can drive the sequence with a fake DBConnection.
func (s *LoadService) runSteps(ctx context.Context, conn shpload.DBConnection, req *shpload.LoadRequest) error {
	steps := []step{
		{
			name: "drop table",
			run: func(ctx context.Context) error {
				_, err := conn.Exec(ctx, dropTableSQL(req.Schema, req.Table))
				return err
			},
		},
		{
			name: "create schema",
			run: func(ctx context.Context) error {
				_, err := conn.Exec(ctx, createSchemaSQL(req.Schema))
				return err
			},
		},
		{
			name: "import",
			run: func(ctx context.Context) error {
				return s.runImport(ctx, conn, req)
			},
		},
	}

	for _, st := range steps {
		s.logger.Verbose("step: %s", st.name)
		if err := st.run(ctx); err != nil {
			return fmt.Errorf("step %q failed: %w", st.name, err)
		}
	}

	s.logger.Info("loaded %s into %s", req.ShapefilePath, req.QualifiedTable())
	return nil
}

// runImport converts the shapefile and executes the generated script on the
// session connection. The script is executed in one Exec call: without bind
// arguments pgx uses the simple protocol, which accepts the multi-statement
// transaction shp2pgsql emits.
func (s *LoadService) runImport(ctx context.Context, conn shpload.DBConnection, req *shpload.LoadRequest) error {
	script, err := s.converter.Convert(ctx, req)
	if err != nil {
		return err
	}

	if _, err := conn.Exec(ctx, string(script)); err != nil {
		return fmt.Errorf("%w: %s", shpload.ErrExecutionFailed, previewSQL(string(script), err))
	}

	return nil
}

// previewSQL formats an execution error with a truncated view of the script,
// so a bad generated batch does not flood the console.
func previewSQL(script string, err error) string {
	preview := script
	if len(preview) > shpload.MaxErrorPreviewLength {
		preview = preview[:shpload.MaxErrorPreviewLength] + "..."
	}
	return fmt.Sprintf("%v (script: %s)", err, preview)
}
