package replay

import "github.com/younwookim/rooks/internal/application/system"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	DT float64 `json:"dt"`           // Frame delta in seconds
	H  float64 `json:"h,omitempty"`  // Horizontal axis
	JP bool    `json:"jp,omitempty"` // JumpPressed
	J  bool    `json:"j,omitempty"`  // JumpHeld
	DP bool    `json:"dp,omitempty"` // DashPressed
	RN bool    `json:"rn,omitempty"` // RunHeld
}

// NewFrameInput packs a controller input snapshot
func NewFrameInput(frame int, dt float64, in system.InputState) FrameInput {
	return FrameInput{
		F:  frame,
		DT: dt,
		H:  in.Horizontal,
		JP: in.JumpPressed,
		J:  in.JumpHeld,
		DP: in.DashPressed,
		RN: in.RunHeld,
	}
}

// Input unpacks the controller input snapshot
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		Horizontal:  fi.H,
		JumpPressed: fi.JP,
		JumpHeld:    fi.J,
		DashPressed: fi.DP,
		RunHeld:     fi.RN,
	}
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
