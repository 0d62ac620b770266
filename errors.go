package maskvox

import (
	"fmt"
)

type makeNewGeneralErrorFuncType = func(message string, formatedValues ...interface{}) error

// GeneralSetupError ...
var GeneralSetupError = makeNewGeneralErrorFunc("setup")

func makeNewGeneralErrorFunc(stage string) makeNewGeneralErrorFuncType {
	return func(message string, formatedValues ...interface{}) error {
		return fmt.Errorf("[voxelizer] "+stage+": "+message, formatedValues...)
	}
}
