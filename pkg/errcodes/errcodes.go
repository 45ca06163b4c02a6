package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	ModelNotLoaded    failure.ErrorCode = "ModelNotLoaded"
	AlignmentFailed   failure.ErrorCode = "AlignmentFailed"
	PredictionFailed  failure.ErrorCode = "PredictionFailed"
	InvalidArtifacts  failure.ErrorCode = "InvalidArtifacts"
	InvalidDataset    failure.ErrorCode = "InvalidDataset"
	PredictionLogFail failure.ErrorCode = "PredictionLogFailed"
	TrainingRunFail   failure.ErrorCode = "TrainingRunFailed"
)
