// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/tarstars/ridge_least_squares/golang/ridge_lsm/rls"
)

var (
	lastErrorMu sync.Mutex
	lastError   string
)

func setLastError(err error) {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

func getLastError() string {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError
}

//sliceFromPtr views caller memory without copying; only used for outputs.
func sliceFromPtr(ptr *C.double, length int) ([]float64, error) {
	if length <= 0 {
		return nil, errors.New("non-positive length")
	}
	if ptr == nil {
		return nil, errors.New("null pointer for non-empty slice")
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(ptr)), length), nil
}

func copyFloatSlice(ptr *C.double, length int) ([]float64, error) {
	src, err := sliceFromPtr(ptr, length)
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), src...), nil
}

//buildRows copies a row-major rows x cols buffer into row slices.
func buildRows(ptr *C.double, rows, cols C.int) ([][]float64, error) {
	r, c := int(rows), int(cols)
	if r <= 0 || c <= 0 {
		return nil, errors.New("invalid matrix dimensions")
	}
	data, err := copyFloatSlice(ptr, r*c)
	if err != nil {
		return nil, err
	}
	x := make([][]float64, r)
	for p := range x {
		x[p] = data[p*c : (p+1)*c : (p+1)*c]
	}
	return x, nil
}

//FitLSM fits a ridge model to a row-major rows x cols matrix. weightsPtr may be NULL.
//On success cols+1 doubles are written to outputPtr, the intercept last, and 0 is returned.
//
//export FitLSM
func FitLSM(
	featuresPtr *C.double,
	rows C.int,
	cols C.int,
	targetPtr *C.double,
	l2 C.double,
	weightsPtr *C.double,
	outputPtr *C.double,
) C.int {
	setLastError(nil)

	x, err := buildRows(featuresPtr, rows, cols)
	if err != nil {
		setLastError(err)
		return 1
	}
	y, err := copyFloatSlice(targetPtr, int(rows))
	if err != nil {
		setLastError(err)
		return 2
	}
	var w []float64
	if weightsPtr != nil {
		if w, err = copyFloatSlice(weightsPtr, int(rows)); err != nil {
			setLastError(err)
			return 3
		}
	}

	theta, err := rls.FitLSM(x, y, rls.WithL2(float64(l2)), rls.WithWeights(w))
	if err != nil {
		setLastError(err)
		return 4
	}

	outSlice, err := sliceFromPtr(outputPtr, len(theta))
	if err != nil {
		setLastError(err)
		return 5
	}
	copy(outSlice, theta)
	return 0
}

//PredictLSM applies cols+1 coefficients to a row-major rows x cols matrix.
//
//export PredictLSM
func PredictLSM(
	thetaPtr *C.double,
	featuresPtr *C.double,
	rows C.int,
	cols C.int,
	outputPtr *C.double,
) C.int {
	setLastError(nil)

	theta, err := copyFloatSlice(thetaPtr, int(cols)+1)
	if err != nil {
		setLastError(err)
		return 1
	}
	x, err := buildRows(featuresPtr, rows, cols)
	if err != nil {
		setLastError(err)
		return 2
	}

	prediction, err := rls.Model{Theta: theta}.Predict(x)
	if err != nil {
		setLastError(err)
		return 3
	}

	outSlice, err := sliceFromPtr(outputPtr, len(prediction))
	if err != nil {
		setLastError(err)
		return 4
	}
	copy(outSlice, prediction)
	return 0
}

//export GetLastError
func GetLastError() *C.char {
	errStr := getLastError()
	if errStr == "" {
		return nil
	}
	return C.CString(errStr)
}

//export FreeCString
func FreeCString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func main() {}
