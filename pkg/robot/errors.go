package robot

import "errors"

var (
	// ErrInvalidArguments signals a shape mismatch between the names, values
	// and speeds of a batched angle command.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrJointNotFound signals a joint name absent from the loaded model.
	ErrJointNotFound = errors.New("joint not found")

	// ErrLinkNotFound signals a link name absent from the loaded model.
	ErrLinkNotFound = errors.New("link not found")

	// ErrNotLoaded signals a call on a gripper before LoadRobot.
	ErrNotLoaded = errors.New("robot not loaded")
)
