package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/mrz1836/nanogen/internal/clock"
	"github.com/mrz1836/nanogen/internal/config"
	"github.com/mrz1836/nanogen/internal/constants"
	nanogenerrors "github.com/mrz1836/nanogen/internal/errors"
	"github.com/mrz1836/nanogen/internal/logging"
	"github.com/mrz1836/nanogen/internal/resolver"
)

// Remediation hints attached to stage failures.
const (
	hintMissingSchema     = "check schema.dir and schema.file in .nanogen/config.yaml, or pass --schema-dir/--schema"
	hintCompileFailed     = "fix the schema errors reported by the compiler above"
	hintGenerateFailed    = "fix the errors reported by the generator above; check the options file if one is used"
	hintMissingDescriptor = "the compiler exited 0 without writing the descriptor; check its version with 'nanogen tools'"
	hintMissingArtifacts  = "the generator exited 0 without writing every file; this usually means a nanopb/protobuf version mismatch, check 'nanogen tools'"
	hintLockHeld          = "another nanogen run is generating this schema; wait for it or set pipeline.lock to false"
	hintUnexpected        = "check permissions and free space, then run again with --verbose"
	hintCanceled          = "the run was interrupted; run it again"
)

// Options configures an Executor.
type Options struct {
	Layout           Layout
	Compiler         string
	CompilerTimeout  time.Duration
	GeneratorTimeout time.Duration
	CleanOnFailure   bool
	Lock             bool
}

// OptionsFromConfig builds executor options from the effective configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Layout:           LayoutFromConfig(cfg),
		Compiler:         cfg.Compiler.Command,
		CompilerTimeout:  cfg.Compiler.Timeout,
		GeneratorTimeout: cfg.Generator.Timeout,
		CleanOnFailure:   cfg.Pipeline.CleanOnFailure,
		Lock:             cfg.Pipeline.Lock,
	}
}

// Executor runs the compile and generate stages.
type Executor struct {
	opts     Options
	runner   CommandRunner
	fs       afero.Fs
	clock    clock.Clock
	locker   Locker
	observer Observer
}

// NewExecutor creates an executor using os/exec, the OS filesystem and,
// when opts.Lock is set, an OS file lock.
func NewExecutor(opts Options) *Executor {
	e := NewExecutorWith(opts, &DefaultCommandRunner{}, afero.NewOsFs())
	if opts.Lock {
		e.locker = FileLocker{}
	}
	return e
}

// NewExecutorWith creates an executor with a custom runner and filesystem (for testing).
// No locker is installed; use SetLocker.
func NewExecutorWith(opts Options, runner CommandRunner, fs afero.Fs) *Executor {
	if opts.Compiler == "" {
		opts.Compiler = constants.ToolProtoc
	}
	if opts.CompilerTimeout <= 0 {
		opts.CompilerTimeout = constants.DefaultCompilerTimeout
	}
	if opts.GeneratorTimeout <= 0 {
		opts.GeneratorTimeout = constants.DefaultGeneratorTimeout
	}
	return &Executor{
		opts:     opts,
		runner:   runner,
		fs:       fs,
		clock:    clock.RealClock{},
		observer: nopObserver{},
	}
}

// SetObserver installs a progress observer. A nil observer disables progress events.
func (e *Executor) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	e.observer = o
}

// SetLocker installs the run lock. A nil locker disables locking.
func (e *Executor) SetLocker(l Locker) {
	e.locker = l
}

// SetClock replaces the time source used for durations.
func (e *Executor) SetClock(c clock.Clock) {
	e.clock = c
}

// Layout returns the paths this executor works on.
func (e *Executor) Layout() Layout {
	return e.opts.Layout
}

// Run resolves the generator and runs both stages.
// A missing schema is reported before discovery, so no process is spawned at all.
func Run(ctx context.Context, tools resolver.ToolResolver, exec *Executor) *Result {
	if res := exec.Preflight(ctx); res != nil {
		return res
	}
	return exec.Run(ctx, tools.Resolve(ctx))
}

// Preflight checks the stage 1 precondition without spawning anything.
// It returns nil when the schema file exists, or a failed Result otherwise.
func (e *Executor) Preflight(ctx context.Context) *Result {
	f := e.checkSchema()
	if f == nil {
		return nil
	}
	return e.finish(ctx, e.clock.Now(), resolver.Resolution{}, e.fail(nil, f))
}

// Run executes stage 1 unconditionally, then stage 2 with the resolved tool.
// It never returns nil and never panics on tool failures: every outcome,
// including cancellation of ctx, is described by the Result.
func (e *Executor) Run(ctx context.Context, res resolver.Resolution) *Result {
	start := e.clock.Now()
	return e.finish(ctx, start, res, e.run(ctx, res))
}

// finish stamps the run identity and logs the outcome.
func (e *Executor) finish(ctx context.Context, start time.Time, res resolver.Resolution, result *Result) *Result {
	result.RunID = uuid.NewString()
	result.Duration = clock.Since(e.clock, start)
	if res.Resolved() {
		result.Generator = res.Tool.String()
	}

	log := zerolog.Ctx(ctx).With().Str("run_id", result.RunID).Logger()
	if result.Success {
		log.Info().
			Strs("outputs", result.Outputs).
			Dur("duration_ms", result.Duration).
			Msg("code generation completed")
		return result
	}

	log.Error().
		Str("kind", result.Kind.String()).
		Str("stage", string(result.Stage)).
		Str("command", result.Command).
		Int("exit_code", result.ExitCode).
		Str("stderr", logging.Excerpt(result.Stderr, logging.DefaultExcerptLines)).
		Str("hint", result.Hint).
		Dur("duration_ms", result.Duration).
		Msg("code generation failed")
	return result
}

func (e *Executor) run(ctx context.Context, res resolver.Resolution) *Result {
	layout := e.opts.Layout
	stages := make([]Stage, 0, 2)

	if err := ctx.Err(); err != nil {
		return e.fail(stages, e.canceled(StageCompile, err))
	}

	if f := e.checkSchema(); f != nil {
		return e.fail(stages, f)
	}
	e.checkOptions(ctx)

	if e.locker != nil {
		release, err := e.locker.Lock(layout.LockPath())
		if err != nil {
			return e.fail(stages, e.lockFailure(err))
		}
		defer func() {
			if err := release(); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Str("lock", layout.LockPath()).Msg("failed to release run lock")
			}
		}()
	}

	// Stage 1: schema -> descriptor.
	compile := Stage{
		Name:     StageCompile,
		Command:  layout.CompileCommand(e.opts.Compiler),
		WorkDir:  layout.SchemaDir,
		Expected: []string{layout.DescriptorPath()},
	}
	if f := e.removeStale(ctx, StageCompile, compile.Expected); f != nil {
		return e.fail(stages, f)
	}
	f := e.execStage(ctx, &compile, stagePolicy{
		timeout:         e.opts.CompilerTimeout,
		timeoutKey:      "compiler.timeout",
		notStartedHint:  constants.InstallHintProtoc,
		failedHint:      hintCompileFailed,
		incompleteHint:  hintMissingDescriptor,
		incompleteLabel: "descriptor",
	})
	stages = append(stages, compile)
	if f != nil {
		return e.fail(stages, f)
	}

	if !res.Resolved() {
		hint := res.Hint
		if hint == "" {
			hint = constants.InstallHintGenerator
		}
		zerolog.Ctx(ctx).Warn().Msg("stage 2 skipped: no code generator resolved")
		return e.fail(stages, &failure{
			kind:    FailureToolNotFound,
			name:    StageGenerate,
			message: "no code generator resolved",
			hint:    hint,
		})
	}

	if err := e.fs.MkdirAll(layout.OutputDir, 0o750); err != nil {
		return e.fail(stages, &failure{
			kind:    FailureUnexpected,
			name:    StageGenerate,
			message: "failed to create output directory " + layout.OutputDir,
			hint:    hintUnexpected,
			cause:   err,
		})
	}

	// Stage 2: descriptor -> sources.
	generate := Stage{
		Name:     StageGenerate,
		Command:  res.Tool.Argv(layout.GenerateArgs()...),
		WorkDir:  layout.SchemaDir,
		Expected: layout.Artifacts(),
	}
	if f := e.removeStale(ctx, StageGenerate, generate.Expected); f != nil {
		return e.fail(stages, f)
	}
	f = e.execStage(ctx, &generate, stagePolicy{
		timeout:         e.opts.GeneratorTimeout,
		timeoutKey:      "generator.timeout",
		notStartedHint:  constants.InstallHintGenerator,
		failedHint:      hintGenerateFailed,
		incompleteHint:  hintMissingArtifacts,
		incompleteLabel: "generated files",
	})
	stages = append(stages, generate)
	if f != nil {
		if e.opts.CleanOnFailure {
			e.removePartial(ctx, layout.Artifacts())
		}
		return e.fail(stages, f)
	}

	return &Result{
		Success: true,
		Outputs: layout.Artifacts(),
		Stages:  stages,
	}
}

// stagePolicy holds what differs between the two stages when classifying an outcome.
type stagePolicy struct {
	timeout         time.Duration
	timeoutKey      string
	notStartedHint  string
	failedHint      string
	incompleteHint  string
	incompleteLabel string
}

// execStage spawns the stage, records its diagnostics into stage and returns a
// failure, or nil when the process exited zero and every expected file exists.
func (e *Executor) execStage(ctx context.Context, stage *Stage, p stagePolicy) *failure {
	log := zerolog.Ctx(ctx)

	e.observer.StageStarted(*stage)
	log.Info().
		Str("stage", string(stage.Name)).
		Str("command", stage.CommandLine()).
		Str("work_dir", stage.WorkDir).
		Dur("timeout", p.timeout).
		Msg("running stage")

	stageCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := e.clock.Now()
	stdout, stderr, exitCode, runErr := e.runner.Run(stageCtx, stage.WorkDir, stage.Command)
	stage.Duration = clock.Since(e.clock, start)
	stage.Stdout = stdout
	stage.Stderr = stderr
	stage.ExitCode = exitCode

	f := e.classify(ctx, stageCtx, stage, runErr, p)

	if f == nil {
		log.Info().
			Str("stage", string(stage.Name)).
			Int("exit_code", exitCode).
			Dur("duration_ms", stage.Duration).
			Msg("stage completed")
		e.observer.StageFinished(*stage, nil)
		return nil
	}

	log.Error().
		Str("stage", string(stage.Name)).
		Str("kind", f.kind.String()).
		Int("exit_code", exitCode).
		Dur("duration_ms", stage.Duration).
		Str("stderr", logging.Excerpt(stderr, logging.DefaultExcerptLines)).
		Msg("stage failed")
	e.observer.StageFinished(*stage, f.err())
	return f
}

// classify maps a finished process to a failure kind. Checks run from the most
// to the least specific cause: cancellation, timeout, start failure, exit status,
// and only then the expected files.
func (e *Executor) classify(ctx, stageCtx context.Context, stage *Stage, runErr error, p stagePolicy) *failure {
	program := ""
	if len(stage.Command) > 0 {
		program = stage.Command[0]
	}

	switch {
	case ctx.Err() != nil:
		return e.canceled(stage.Name, ctx.Err()).withStage(stage)

	case errors.Is(stageCtx.Err(), context.DeadlineExceeded):
		return &failure{
			kind:    FailureExternalTool,
			stage:   stage,
			name:    stage.Name,
			message: fmt.Sprintf("%s did not finish within %s", program, p.timeout),
			hint:    "raise " + p.timeoutKey + " if the tool is just slow",
			cause:   nanogenerrors.ErrCommandTimeout,
		}

	case errors.Is(runErr, nanogenerrors.ErrCommandNotStarted):
		return &failure{
			kind:    FailureExternalTool,
			stage:   stage,
			name:    stage.Name,
			message: "could not start " + program,
			hint:    p.notStartedHint,
			cause:   runErr,
		}

	case runErr != nil || stage.ExitCode != 0:
		return &failure{
			kind:    FailureExternalTool,
			stage:   stage,
			name:    stage.Name,
			message: fmt.Sprintf("%s exited with code %d", program, stage.ExitCode),
			hint:    p.failedHint,
			cause:   runErr,
		}
	}

	missing, err := e.missingFiles(stage.Expected)
	if err != nil {
		return &failure{
			kind:    FailureUnexpected,
			stage:   stage,
			name:    stage.Name,
			message: "failed to check " + p.incompleteLabel,
			hint:    hintUnexpected,
			cause:   err,
		}
	}
	if len(missing) > 0 {
		return &failure{
			kind:    FailureIncompleteOutput,
			stage:   stage,
			name:    stage.Name,
			message: fmt.Sprintf("%s exited 0 but %s missing: %s", program, p.incompleteLabel, strings.Join(missing, ", ")),
			hint:    p.incompleteHint,
		}
	}
	return nil
}

// checkSchema verifies the stage 1 precondition.
func (e *Executor) checkSchema() *failure {
	layout := e.opts.Layout
	path := layout.SchemaPath()

	ok, err := isFile(e.fs, path)
	if err != nil {
		return &failure{
			kind:    FailureUnexpected,
			name:    StageCompile,
			command: layout.CompileCommand(e.opts.Compiler),
			message: "failed to read schema " + path,
			hint:    hintUnexpected,
			cause:   err,
		}
	}
	if !ok {
		return &failure{
			kind:    FailureMissingInput,
			name:    StageCompile,
			command: layout.CompileCommand(e.opts.Compiler),
			message: "schema file not found: " + path,
			hint:    hintMissingSchema,
		}
	}
	return nil
}

// checkOptions warns when the options file is absent. The generator picks it up
// implicitly by name, so a typo would otherwise silently change the generated code.
func (e *Executor) checkOptions(ctx context.Context) {
	layout := e.opts.Layout
	if layout.OptionsFile == "" {
		return
	}
	path := layout.OptionsPath()
	if ok, _ := isFile(e.fs, path); ok {
		return
	}
	zerolog.Ctx(ctx).Warn().Str("options", path).Msg("options file not found, generating with nanopb defaults")
	e.observer.Warning("options file not found: " + path)
}

func (e *Executor) lockFailure(err error) *failure {
	hint := hintUnexpected
	if errors.Is(err, nanogenerrors.ErrLockHeld) {
		hint = hintLockHeld
	}
	return &failure{
		kind:    FailureUnexpected,
		name:    StageCompile,
		message: "failed to acquire run lock " + e.opts.Layout.LockPath(),
		hint:    hint,
		cause:   err,
	}
}

func (e *Executor) canceled(name StageName, err error) *failure {
	return &failure{
		kind:    FailureUnexpected,
		name:    name,
		message: "run canceled",
		hint:    hintCanceled,
		cause:   err,
	}
}

// missingFiles returns the paths in expected that are not regular files.
func (e *Executor) missingFiles(expected []string) ([]string, error) {
	var missing []string
	for _, path := range expected {
		ok, err := isFile(e.fs, path)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, path)
		}
	}
	return missing, nil
}

// removeStale deletes a stage's expected files before it runs, so files left by
// an earlier run cannot satisfy the existence check for a tool that wrote nothing.
func (e *Executor) removeStale(ctx context.Context, name StageName, paths []string) *failure {
	for _, path := range paths {
		ok, err := afero.Exists(e.fs, path)
		if err == nil && ok {
			err = e.fs.Remove(path)
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return &failure{
				kind:    FailureUnexpected,
				name:    name,
				message: "failed to remove previous output " + path,
				hint:    hintUnexpected,
				cause:   err,
			}
		}
		if ok {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("removed previous output")
		}
	}
	return nil
}

// removePartial deletes whatever a failed stage 2 left behind so a later build
// cannot pick up a half-regenerated header/source pair.
func (e *Executor) removePartial(ctx context.Context, paths []string) {
	log := zerolog.Ctx(ctx)
	for _, path := range paths {
		err := e.fs.Remove(path)
		switch {
		case err == nil:
			log.Info().Str("path", path).Msg("removed partial output")
		case errors.Is(err, os.ErrNotExist):
		default:
			log.Warn().Err(err).Str("path", path).Msg("failed to remove partial output")
		}
	}
}

// fail turns a failure into the run's Result.
func (e *Executor) fail(stages []Stage, f *failure) *Result {
	if stages == nil {
		stages = []Stage{}
	}
	r := &Result{
		Kind:    f.kind,
		Stage:   f.name,
		Message: f.message,
		Hint:    f.hint,
		Stages:  stages,
		err:     f.err(),
	}
	switch {
	case f.stage != nil:
		r.Command = f.stage.CommandLine()
		r.ExitCode = f.stage.ExitCode
		r.Stdout = f.stage.Stdout
		r.Stderr = f.stage.Stderr
	case f.command != nil:
		r.Command = CommandLine(f.command)
	}
	return r
}

// isFile reports whether path exists as a regular file.
// A missing path is not an error.
func isFile(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
