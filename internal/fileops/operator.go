package fileops

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pavelvrba/bookorganizer/internal/audiohdr"
	"github.com/pavelvrba/bookorganizer/internal/checksum"
	"github.com/pavelvrba/bookorganizer/internal/model"
)

// Request is one execute_file_operation call's parameters.
type Request struct {
	Source            string
	Destination       string
	Operation         model.OperationType
	ValidateIntegrity bool
	// AudioContentHash switches integrity validation to the audio-payload
	// range digest instead of the default full-file SHA-256, so the
	// comparison survives metadata-only tag edits between source and
	// destination. Off by default.
	AudioContentHash bool
	Progress         ProgressFunc
	Cancel           CancelFunc
}

// audioExtensions recognises the formats the audio-payload hash mode
// treats specially; anything else falls back to a full-file checksum.
var audioExtensions = map[string]bool{
	".mp3": true, ".m4a": true, ".m4b": true, ".flac": true,
	".aac": true, ".ogg": true, ".opus": true, ".wma": true,
}

// Execute runs the orchestrated operation of spec §4.7: preflight, strategy
// dispatch, and optional before/after integrity validation.
func (o *Operator) Execute(req Request) model.FileOperationResult {
	start := time.Now()
	progress := req.Progress
	if progress == nil {
		progress = noopProgress
	}
	cancel := req.Cancel
	if cancel == nil {
		cancel = noCancel
	}

	result := model.FileOperationResult{
		Source: req.Source, Destination: req.Destination, Operation: req.Operation,
	}

	progress(StagePreparing, 0, 0)
	if err := preflight(req.Source, req.Destination); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	strat, ok := o.strategies[req.Operation]
	if !ok {
		result.Err = model.New(model.ErrInvalidArgument, string(req.Operation), "unknown operation type")
		result.Duration = time.Since(start)
		return result
	}
	canExec, err := strat.canExecute(req.Source, req.Destination)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	if !canExec {
		result.Err = model.New(model.ErrUnsupportedOperation, req.Source, "strategy cannot execute for this source/destination pair")
		result.Duration = time.Since(start)
		return result
	}

	linkOp := req.Operation == model.OpHardLink || req.Operation == model.OpSymbolicLink
	validateIntegrity := req.ValidateIntegrity && !linkOp

	hash := checksum.File
	if req.AudioContentHash {
		hash = AudioContentHash
	}

	if st, statErr := os.Stat(req.Source); statErr == nil {
		result.SizeBytes = st.Size()
	}

	if validateIntegrity {
		progress(StageCalculatingSourceChecksum, 0, 0)
		sum, err := hash(req.Source)
		if err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}
		result.SourceChecksum = sum
	}

	if cancel() {
		result.Err = model.New(model.ErrCancelled, req.Source, "operation cancelled before transfer")
		result.Duration = time.Since(start)
		return result
	}

	if err := strat.execute(req.Source, req.Destination, progress, cancel); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if validateIntegrity {
		progress(StageCalculatingDestinationChecksum, 0, 0)
		sum, err := hash(req.Destination)
		if err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}
		result.DestinationChecksum = sum

		progress(StageValidatingIntegrity, 0, 0)
		if !checksum.Equal(result.SourceChecksum, result.DestinationChecksum) {
			if req.Operation != model.OpMove {
				progress(StageCleaningUp, 0, 0)
				if err := os.Remove(req.Destination); err != nil {
					o.log.Warn("fileops: cleanup after integrity failure left a partial file",
						zap.String("path", req.Destination), zap.Error(err))
				}
			}
			result.Err = model.New(model.ErrIntegrityFailure, req.Destination, "destination checksum does not match source")
			result.Duration = time.Since(start)
			return result
		}
		result.IntegrityValidated = true
	}

	progress(StageCompleted, result.SizeBytes, result.SizeBytes)
	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// AudioContentHash is the optional audio-payload checksum mode: for
// recognised audio extensions the digest covers only the byte range
// outside any leading/trailing tag frames, so it is stable across
// metadata-only edits. Non-audio files, and audio files whose invariant
// range cannot be determined, fall back to the full-file hash.
func AudioContentHash(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !audioExtensions[ext] {
		return checksum.File(path)
	}
	start, end, ok := audiohdr.InvariantRange(path)
	if !ok {
		return checksum.File(path)
	}
	return checksum.Range(path, start, end)
}
