package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"id": 1})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something broke")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something broke", resp.Error)
}

func TestValidationError(t *testing.T) {
	type form struct {
		Email  string  `validate:"required,email"`
		Amount float64 `validate:"required,gt=0"`
		Status string  `validate:"omitempty,oneof=paid failed"`
	}

	v := validator.New()

	tests := []struct {
		name string
		in   form
		want []string
	}{
		{
			name: "пустая форма",
			in:   form{},
			want: []string{
				"field Email is a required field",
				"field Amount is a required field",
			},
		},
		{
			name: "некорректный email и отрицательная сумма",
			in:   form{Email: "not-an-email", Amount: -1},
			want: []string{
				"field Email must be a valid email",
				"field Amount must be greater than 0",
			},
		},
		{
			name: "недопустимое значение oneof",
			in:   form{Email: "a@b.com", Amount: 1, Status: "pending"},
			want: []string{"field Status must be one of: paid failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			require.Error(t, err)

			resp := ValidationError(err.(validator.ValidationErrors))
			assert.Equal(t, StatusError, resp.Status)
			for _, want := range tt.want {
				assert.Contains(t, resp.Error, want)
			}
		})
	}
}
