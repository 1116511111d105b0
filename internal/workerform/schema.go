package workerform

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"workerctl/sdk/models"

	"github.com/go-playground/validator/v10"
)

// Field names shared with the cloud API's error responses
const (
	FieldName             = "name"
	FieldInstallationID   = "githubInstallationId"
	FieldRepositoryOwner  = "githubRepositoryOwner"
	FieldRepositoryName   = "githubRepositoryName"
	FieldRepositoryBranch = "githubRepositoryBranch"
	FieldSteps            = "steps"
	FieldBuildDir         = "buildDir"
	FieldDockerfilePath   = "dockerfilePath"
	FieldEnvVars          = "envVars"
	FieldIsIac            = "isIac"
	FieldNumReplicas      = "numReplicas"
	FieldCPUKind          = "cpuKind"
	FieldCPUs             = "cpus"
	FieldMemoryMB         = "memoryMb"
	FieldRegions          = "regions"
)

// FieldErrors maps a field name to a human-readable message
type FieldErrors map[string]string

// Fields returns the field names in sorted order
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Merge overlays local on top of external; local messages win on collision
func Merge(local, external FieldErrors) FieldErrors {
	merged := make(FieldErrors, len(local)+len(external))
	for field, msg := range external {
		merged[field] = msg
	}
	for field, msg := range local {
		merged[field] = msg
	}
	return merged
}

// ValidationError is returned when a request fails schema validation
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must(v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		_, ok := FindRegion(models.ManagedWorkerRegion(fl.Field().String()))
		return ok
	}))
	must(v.RegisterValidation("relpath", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		return !path.IsAbs(p) && !filepath.IsAbs(p)
	}))
	v.RegisterStructValidation(validateMachineType, models.CreateManagedWorkerRuntimeConfigRequest{})

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// validateMachineType only reports when the individual fields are valid,
// so a bad cpuKind is not reported twice.
func validateMachineType(sl validator.StructLevel) {
	rc := sl.Current().Interface().(models.CreateManagedWorkerRuntimeConfigRequest)
	if rc.CPUKind != models.CPUKindShared && rc.CPUKind != models.CPUKindPerformance {
		return
	}
	if rc.CPUs <= 0 || rc.MemoryMB <= 0 {
		return
	}
	if _, ok := MatchMachineType(rc.CPUKind, rc.CPUs, rc.MemoryMB); !ok {
		sl.ReportError(rc.CPUKind, FieldCPUKind, "CPUKind", "machinetype", "")
	}
}

// Validate checks a full request. An empty result means the request is valid.
func Validate(req models.CreateManagedWorkerRequest) FieldErrors {
	errs := FieldErrors{}

	err := validate.Struct(req)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[FieldName] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		field := fieldName(fe.Field())
		if _, exists := errs[field]; exists {
			continue
		}
		errs[field] = message(fe)
	}
	return errs
}

// fieldName strips index and key suffixes: "steps[0]" and "envVars[FOO]" collapse
// onto their field.
func fieldName(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() != fieldName(fe.Field()) && fieldName(fe.Field()) == FieldEnvVars {
			return "Variable names must not be empty"
		}
		return "Required"
	case "uuid":
		return "Must be a valid UUID"
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "region":
		return fmt.Sprintf("Unknown region %q", fe.Value())
	case "relpath":
		return "Must be a relative path"
	case "machinetype":
		return "No machine type offers this CPU and memory combination"
	default:
		return fmt.Sprintf("Invalid value (%s)", fe.Tag())
	}
}
