package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/cristianadrielbraun/qrposter/internal/form"
)

var validatorsOnce sync.Once

// registerValidators adds the form tags to gin's validator engine.
func registerValidators() {
	validatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			form.Register(v)
		}
	})
}
