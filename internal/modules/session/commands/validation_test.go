package commands

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_CreateSessionCommand_Validate_Rejects_Nil_PlayerID(t *testing.T) {
	command := CreateSessionCommand{PlayerID: uuid.Nil, RecipeID: 1}

	require.Error(t, command.Validate())
}

func Test_CreateSessionCommand_Validate_Rejects_Invalid_RecipeID(t *testing.T) {
	command := CreateSessionCommand{PlayerID: uuid.New(), RecipeID: 0}

	require.Error(t, command.Validate())
}

func Test_CreateSessionCommand_Validate_Rejects_Out_Of_Range_Coordinates(t *testing.T) {
	command := CreateSessionCommand{PlayerID: uuid.New(), RecipeID: 1, InitialLat: 91}
	require.Error(t, command.Validate())

	command = CreateSessionCommand{PlayerID: uuid.New(), RecipeID: 1, InitialLng: -181}
	require.Error(t, command.Validate())
}

func Test_CreateSessionCommand_Validate_Accepts_Valid_Command(t *testing.T) {
	command := CreateSessionCommand{
		PlayerID:   uuid.New(),
		RecipeID:   1,
		InitialLat: 45.815,
		InitialLng: 15.9819,
	}

	require.NoError(t, command.Validate())
}

func Test_JoinSessionCommand_Validate_Rejects_Blank_Code(t *testing.T) {
	command := JoinSessionCommand{PlayerID: uuid.New(), Code: "   "}

	require.Error(t, command.Validate())
}

func Test_JoinSessionCommand_Validate_Accepts_Valid_Command(t *testing.T) {
	command := JoinSessionCommand{PlayerID: uuid.New(), Code: "ABCDE", Lat: 45.815, Lng: 15.9819}

	require.NoError(t, command.Validate())
}

func Test_CollectFlowerCommand_Validate_Requires_Color_Or_Image(t *testing.T) {
	command := CollectFlowerCommand{PlayerID: uuid.New()}

	require.Error(t, command.Validate())
}

func Test_CollectFlowerCommand_Validate_Accepts_ColorID(t *testing.T) {
	command := CollectFlowerCommand{PlayerID: uuid.New(), ColorID: "red"}

	require.NoError(t, command.Validate())
}

func Test_CollectFlowerCommand_Validate_Accepts_Image(t *testing.T) {
	command := CollectFlowerCommand{PlayerID: uuid.New(), Image: []byte{0x89, 0x50}}

	require.NoError(t, command.Validate())
}

func Test_UpdateAnchorCommand_Validate_Rejects_Out_Of_Range_Coordinates(t *testing.T) {
	command := UpdateAnchorCommand{PlayerID: uuid.New(), Lat: -91}

	require.Error(t, command.Validate())
}

func Test_LeaveSessionCommand_Validate_Rejects_Nil_PlayerID(t *testing.T) {
	command := LeaveSessionCommand{PlayerID: uuid.Nil}

	require.Error(t, command.Validate())
}
