package apprunner

import (
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	DefaultPort            = "3000"
	DefaultCpu             = "1 vCPU"
	DefaultMemory          = "2 GB"
	DefaultHealthCheckPath = "/"
)

// App Runner accepts either unit form.
var (
	cpuValues = []string{
		"256", "512", "1024", "2048", "4096",
		"0.25 vCPU", "0.5 vCPU", "1 vCPU", "2 vCPU", "4 vCPU",
	}
	memoryValues = []string{
		"512", "1024", "2048", "3072", "4096", "6144", "8192", "10240", "12288",
		"0.5 GB", "1 GB", "2 GB", "3 GB", "4 GB", "6 GB", "8 GB", "10 GB", "12 GB",
	}
)

func IsValidCpu(v string) bool {
	return lo.Contains(cpuValues, v)
}

func IsValidMemory(v string) bool {
	return lo.Contains(memoryValues, v)
}

// RegisterValidations adds the apprunner_cpu and apprunner_memory tags to v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("apprunner_cpu", func(fl validator.FieldLevel) bool {
		return IsValidCpu(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("apprunner_memory", func(fl validator.FieldLevel) bool {
		return IsValidMemory(fl.Field().String())
	})
}
