package migrations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/marianatek/adddefault/defaultvalue"
	"github.com/marianatek/adddefault/migrations"
	"github.com/marianatek/adddefault/migrations/mocks"
	"github.com/stretchr/testify/require"
)

func newEditor(ctrl *gomock.Controller, vendor string) *mocks.MockSchemaEditor {
	editor := mocks.NewMockSchemaEditor(ctrl)
	editor.EXPECT().Vendor().Return(vendor).AnyTimes()
	editor.EXPECT().Alias().Return("default").AnyTimes()
	return editor
}

func TestAddDefaultValue_Apply(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{
			name:  "bool",
			value: false,
			want:  `ALTER TABLE "machines_machine" ALTER COLUMN "is_functional" SET DEFAULT 'False';`,
		},
		{
			name:  "string",
			value: "No description provided",
			want:  `ALTER TABLE "machines_machine" ALTER COLUMN "is_functional" SET DEFAULT 'No description provided';`,
		},
		{
			name:  "date",
			value: defaultvalue.Date{Year: 1970, Month: time.January, Day: 1},
			want:  `ALTER TABLE "machines_machine" ALTER COLUMN "is_functional" SET DEFAULT '1970-01-01';`,
		},
		{
			name:  "now",
			value: defaultvalue.Now,
			want:  `ALTER TABLE "machines_machine" ALTER COLUMN "is_functional" SET DEFAULT now();`,
		},
		{
			name:  "today",
			value: defaultvalue.Today,
			want:  `ALTER TABLE "machines_machine" ALTER COLUMN "is_functional" SET DEFAULT now();`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ctx := context.Background()
			editor := newEditor(ctrl, "postgresql")
			state := mocks.NewMockProjectState(ctrl)

			gomock.InOrder(
				state.EXPECT().AllowMigrate("default", "Machine").Return(true).Times(1),
				state.EXPECT().DBTable("Machine").Return("machines_machine", nil).Times(1),
				editor.EXPECT().Execute(ctx, tt.want).Return(nil).Times(1),
			)

			op := migrations.NewAddDefaultValue("Machine", "is_functional", tt.value)
			require.NoError(t, op.Apply(ctx, editor, state))
		})
	}
}

func TestAddDefaultValue_Revert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	editor := newEditor(ctrl, "postgresql")
	state := mocks.NewMockProjectState(ctrl)

	gomock.InOrder(
		state.EXPECT().AllowMigrate("default", "Machine").Return(true).Times(1),
		state.EXPECT().DBTable("Machine").Return("machines_machine", nil).Times(1),
		editor.EXPECT().
			Execute(ctx, `ALTER TABLE "machines_machine" ALTER COLUMN "is_functional" DROP DEFAULT;`).
			Return(nil).Times(1),
	)

	op := migrations.NewAddDefaultValue("Machine", "is_functional", false)
	require.NoError(t, op.Revert(ctx, editor, state))
}

func TestAddDefaultValue_UnsupportedVendor(t *testing.T) {
	for _, vendor := range []string{"sqlite", "mysql", "oracle"} {
		t.Run(vendor, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// no expectations on state nor on Execute: any call fails the test
			editor := newEditor(ctrl, vendor)
			state := mocks.NewMockProjectState(ctrl)

			op := migrations.NewAddDefaultValue("Machine", "is_functional", defaultvalue.Now)
			require.NoError(t, op.Apply(context.Background(), editor, state))
			require.NoError(t, op.Revert(context.Background(), editor, state))
		})
	}
}

func TestAddDefaultValue_NotRouted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	editor := newEditor(ctrl, "postgresql")
	state := migrations.StaticState{
		Tables:  map[string]string{"Machine": "machines_machine"},
		Aliases: []string{"replica"},
	}

	op := migrations.NewAddDefaultValue("Machine", "is_functional", true)
	require.NoError(t, op.Apply(context.Background(), editor, state))
	require.NoError(t, op.Revert(context.Background(), editor, state))
}

func TestAddDefaultValue_UnknownModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	editor := newEditor(ctrl, "postgresql")
	state := migrations.StaticState{}

	op := migrations.NewAddDefaultValue("Machine", "is_functional", true)
	err := op.Apply(context.Background(), editor, state)
	require.Error(t, err)
	require.True(t, errors.Is(err, migrations.ErrUnknownModel))
}

func TestAddDefaultValue_ExecuteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("boom")
	editor := newEditor(ctrl, "postgresql")
	editor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(boom).Times(1)
	state := migrations.StaticState{Tables: map[string]string{"Machine": "machines_machine"}}

	op := migrations.NewAddDefaultValue("Machine", "is_functional", true)
	err := op.Apply(context.Background(), editor, state)
	require.True(t, errors.Is(err, boom))
	require.Contains(t, err.Error(), `SET DEFAULT 'True';`)
}

func TestAddDefaultValue_LowercaseBooleans(t *testing.T) {
	rec := migrations.NewRecorder("postgresql", "default")
	state := migrations.StaticState{Tables: map[string]string{"Machine": "machines_machine"}}

	op := migrations.NewAddDefaultValue("Machine", "is_functional", true)
	op.Renderer.LowercaseBooleans = true
	require.NoError(t, op.Apply(context.Background(), rec, state))
	require.Equal(t, []string{`ALTER TABLE "machines_machine" ALTER COLUMN "is_functional" SET DEFAULT 'true';`}, rec.Statements)
}

func TestAddDefaultValue_Describe(t *testing.T) {
	op := migrations.NewAddDefaultValue("Machine", "is_functional", false)
	require.Equal(t, "Add to field Machine.is_functional the default value False", op.Describe())
	require.True(t, op.Reversible())
}

func TestAddDefaultValue_SerializeRoundTrip(t *testing.T) {
	op := migrations.NewAddDefaultValue("Machine", "created", defaultvalue.Today)

	name, kwargs := op.Serialize()
	require.Equal(t, "AddDefaultValue", name)
	require.Equal(t, map[string]interface{}{
		"model_name": "Machine",
		"name":       "created",
		"value":      defaultvalue.Today,
	}, kwargs)

	got, err := migrations.Deserialize(name, kwargs)
	require.NoError(t, err)
	require.Equal(t, op, got)
}

func TestDeserialize_Errors(t *testing.T) {
	_, err := migrations.Deserialize("RemoveDefaultValue", nil)
	require.True(t, errors.Is(err, migrations.ErrUnknownOperation))

	_, err = migrations.Deserialize("AddDefaultValue", map[string]interface{}{"name": "created"})
	require.EqualError(t, err, "invalid AddDefaultValue operation: model_name is required")

	_, err = migrations.Deserialize("AddDefaultValue", map[string]interface{}{"model_name": "Machine"})
	require.EqualError(t, err, "invalid AddDefaultValue operation: name is required")

	_, err = migrations.Deserialize("AddDefaultValue", map[string]interface{}{
		"model_name": "Machine",
		"name":       "created",
		"colour":     "blue",
	})
	require.Error(t, err)
}
