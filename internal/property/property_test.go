package property

import (
	"bytes"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scortch/internal/codec"
	"github.com/born-ml/scortch/internal/exchange"
	"github.com/born-ml/scortch/internal/handle"
	"github.com/born-ml/scortch/internal/tensor"
)

func newObject(t *testing.T, params ...Param) (*Object, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	obj, err := NewWithLogger(zerolog.New(&buf), params...)
	require.NoError(t, err)
	t.Cleanup(obj.Close)
	return obj, &buf
}

func TestListProperties(t *testing.T) {
	specs := ListProperties()
	require.Len(t, specs, 2)
	assert.Equal(t, Dimensions, specs[0].Name)
	assert.Equal(t, Data, specs[1].Name)
}

func TestNewDefaults(t *testing.T) {
	obj, _ := newObject(t)

	assert.Equal(t, handle.Ready, obj.Handle().State())
	assert.Equal(t, tensor.Shape{0}, obj.Get(Dimensions))
	assert.Nil(t, obj.LastError())
}

func TestNewWithConstructParams(t *testing.T) {
	obj, _ := newObject(t,
		Param{Name: Dimensions, Value: []int64{1}},
		Param{Name: Data, Value: exchange.Int64s(42)},
	)

	assert.Equal(t, tensor.Shape{1}, obj.Get(Dimensions))
	v, ok := obj.Get(Data).(exchange.Value)
	require.True(t, ok)
	assert.True(t, exchange.Equal(exchange.Int64s(42), v))
}

func TestNewFailures(t *testing.T) {
	_, err := NewWithLogger(zerolog.Nop(), Param{Name: "rank", Value: 3})
	assert.ErrorIs(t, err, ErrUnknownProperty)

	_, err = NewWithLogger(zerolog.Nop(), Param{Name: Dimensions, Value: "3x3"})
	assert.ErrorIs(t, err, codec.ErrInvalidContainerType)

	_, err = NewWithLogger(zerolog.Nop(), Param{Name: Data, Value: exchange.NewNested()})
	assert.ErrorIs(t, err, codec.ErrUnsupportedScalarType)
}

func TestSetDimensionsForms(t *testing.T) {
	obj, _ := newObject(t)

	obj.Set(Dimensions, []int{2, 2})
	assert.Equal(t, tensor.Shape{2, 2}, obj.Get(Dimensions))

	obj.Set(Dimensions, tensor.Shape{3})
	assert.Equal(t, tensor.Shape{3}, obj.Get(Dimensions))

	obj.Set(Dimensions, nil)
	assert.Equal(t, tensor.Shape{0}, obj.Get(Dimensions))
	assert.Nil(t, obj.LastError())
}

func TestSetDataFailureIsOutOfBand(t *testing.T) {
	obj, logs := newObject(t, Param{Name: Data, Value: exchange.Int64s(1, 2, 3)})

	bad, err := exchange.NewLeaf(tensor.Uint8, []byte{1, 2})
	require.NoError(t, err)
	obj.Set(Data, bad)

	info := obj.LastError()
	require.NotNil(t, info)
	assert.Equal(t, CodeInvalidDataType, info.Code)
	assert.Contains(t, info.Message, "unsupported scalar type")
	assert.Contains(t, logs.String(), "Could not set 'data' property")

	assert.Equal(t, tensor.Shape{3}, obj.Get(Dimensions))
	assert.Nil(t, obj.LastError(), "a successful call clears the previous error")
}

func TestGetDataFailureReturnsNil(t *testing.T) {
	obj, logs := newObject(t)
	obj.Close()

	assert.Nil(t, obj.Get(Data))
	info := obj.LastError()
	require.NotNil(t, info)
	assert.Equal(t, CodeInternal, info.Code)
	assert.Contains(t, logs.String(), "Could not get 'data' property")
}

func TestWrongValueType(t *testing.T) {
	obj, _ := newObject(t)

	obj.Set(Data, []float64{1, 2})
	require.NotNil(t, obj.LastError())
	assert.Equal(t, CodeInvalidDataType, obj.LastError().Code)
}

func TestUnknownProperty(t *testing.T) {
	obj, logs := newObject(t)

	assert.Nil(t, obj.Get("rank"))
	require.NotNil(t, obj.LastError())
	assert.Equal(t, CodeInvalidProperty, obj.LastError().Code)

	obj.Set("rank", 2)
	assert.Equal(t, CodeInvalidProperty, obj.LastError().Code)
	assert.Contains(t, logs.String(), "invalid property id")
}

func TestErrorInfoError(t *testing.T) {
	info := &ErrorInfo{Code: CodeInvalidDataType, Message: "boom"}
	assert.Equal(t, "invalid_data_type: boom", info.Error())
}

func TestConstructWithHandleOptions(t *testing.T) {
	obj, err := Construct(zerolog.Nop(), []handle.Option{handle.WithDType(tensor.Int64)},
		[]Param{{Name: Dimensions, Value: []int64{2}}})
	require.NoError(t, err)
	defer obj.Close()

	v, ok := obj.Get(Data).(exchange.Value)
	require.True(t, ok)
	assert.True(t, exchange.Equal(exchange.Int64s(0, 0), v))
}

func TestOversizedDimensionsAreInternal(t *testing.T) {
	obj, _ := newObject(t, Param{Name: Data, Value: exchange.Int64s(1, 2)})

	obj.Set(Dimensions, []int64{3, math.MaxInt64 / 2})

	info := obj.LastError()
	require.NotNil(t, info)
	assert.Equal(t, CodeInternal, info.Code)
	assert.Equal(t, tensor.Shape{2}, obj.Get(Dimensions))
}
