package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/seqsense/pcdvolume/volume"
	"github.com/seqsense/pcgol/mat"
)

type console struct {
	cmd *commandContext
}

var errArgumentNumber = errors.New("invalid number of arguments")
var errInvalidCommand = errors.New("invalid command")

func vec3Command(get func(*commandContext) mat.Vec3, set func(*commandContext, mat.Vec3)) func(cmd *commandContext, args []float32) ([][]float32, error) {
	return func(cmd *commandContext, args []float32) ([][]float32, error) {
		switch len(args) {
		case 0:
		case 3:
			set(cmd, mat.Vec3{args[0], args[1], args[2]})
		default:
			return nil, errArgumentNumber
		}
		v := get(cmd)
		return [][]float32{v[:]}, nil
	}
}

func sideCommand(fn func(cmd *commandContext, s volume.Side) (mat.Vec3, error)) func(cmd *commandContext, args []float32) ([][]float32, error) {
	return func(cmd *commandContext, args []float32) ([][]float32, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		s, err := sideArg(args[0])
		if err != nil {
			return nil, err
		}
		v, err := fn(cmd, s)
		if err != nil {
			return nil, err
		}
		return [][]float32{v[:]}, nil
	}
}

// sideArg rejects non-integral side indices instead of truncating them.
func sideArg(a float32) (volume.Side, error) {
	s := volume.Side(a)
	if float32(s) != a || !s.Valid() {
		return 0, errInvalidSide
	}
	return s, nil
}

var consoleCommands = map[string]func(cmd *commandContext, args []float32) ([][]float32, error){
	"origin": vec3Command(
		func(cmd *commandContext) mat.Vec3 { return cmd.Volume().Origin },
		(*commandContext).SetOrigin,
	),
	"size": vec3Command(
		func(cmd *commandContext) mat.Vec3 { return cmd.Volume().Size },
		(*commandContext).SetSize,
	),
	"position": vec3Command((*commandContext).Position, (*commandContext).SetPosition),
	"rotation": vec3Command((*commandContext).Rotation, (*commandContext).SetRotation),
	"scale":    vec3Command((*commandContext).Scale, (*commandContext).SetScale),
	"corners": func(cmd *commandContext, args []float32) ([][]float32, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		var res [][]float32
		for i, c := range cmd.Corners() {
			res = append(res, []float32{float32(i), c[0], c[1], c[2]})
		}
		return res, nil
	},
	"bounds": func(cmd *commandContext, args []float32) ([][]float32, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		b := cmd.Bounds()
		return [][]float32{b.Center[:], b.Size[:]}, nil
	},
	"side_position":  sideCommand((*commandContext).SidePosition),
	"side_direction": sideCommand((*commandContext).SideDirection),
	"inside": func(cmd *commandContext, args []float32) ([][]float32, error) {
		if len(args) != 3 {
			return nil, errArgumentNumber
		}
		if cmd.Inside(mat.Vec3{args[0], args[1], args[2]}) {
			return [][]float32{{1}}, nil
		}
		return [][]float32{{0}}, nil
	},
	"slide": func(cmd *commandContext, args []float32) ([][]float32, error) {
		if len(args) != 2 {
			return nil, errArgumentNumber
		}
		s, err := sideArg(args[0])
		if err != nil {
			return nil, err
		}
		if err := cmd.Slide(s, args[1]); err != nil {
			return nil, err
		}
		v := cmd.Volume()
		return [][]float32{v.Origin[:], v.Size[:]}, nil
	},
	"undo": func(cmd *commandContext, args []float32) ([][]float32, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		if !cmd.Undo() {
			return nil, errors.New("no history")
		}
		v := cmd.Volume()
		return [][]float32{v.Origin[:], v.Size[:]}, nil
	},
	"reset": func(cmd *commandContext, args []float32) ([][]float32, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		cmd.Reset()
		v := cmd.Volume()
		return [][]float32{v.Origin[:], v.Size[:]}, nil
	},
	"max_history": func(cmd *commandContext, args []float32) ([][]float32, error) {
		switch len(args) {
		case 0:
		case 1:
			cmd.history.SetMaxHistory(int(args[0]))
		default:
			return nil, errArgumentNumber
		}
		return [][]float32{{float32(cmd.history.MaxHistory())}}, nil
	},
}

var consoleStringCommands = map[string]func(cmd *commandContext, args []string) (string, error){
	"objects": func(cmd *commandContext, args []string) (string, error) {
		var layers []int
		for _, a := range args {
			l, err := strconv.Atoi(a)
			if err != nil {
				return "", err
			}
			layers = append(layers, l)
		}
		var mask volume.LayerMask
		if len(layers) > 0 {
			if mask = volume.LayerMaskOf(layers...); mask == 0 {
				return "", nil
			}
		}
		var names []string
		for _, o := range cmd.Objects(mask) {
			names = append(names, o.Name)
		}
		return strings.Join(names, "\n"), nil
	},
	"classify": func(cmd *commandContext, args []string) (string, error) {
		if len(args) != 1 {
			return "", errArgumentNumber
		}
		c, err := cmd.Classify(args[0])
		if err != nil {
			return "", err
		}
		return c.String(), nil
	},
	"crop": func(cmd *commandContext, args []string) (string, error) {
		var invert bool
		switch {
		case len(args) == 3 && args[2] == "invert":
			invert = true
		case len(args) == 2:
		default:
			return "", errArgumentNumber
		}
		n, err := cmd.Crop(args[0], args[1], invert)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	},
}

func (c *console) Run(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	if fn, ok := consoleStringCommands[args[0]]; ok {
		return fn(c.cmd, args[1:])
	}
	fn, ok := consoleCommands[args[0]]
	if !ok {
		return "", errInvalidCommand
	}
	var argsFloat []float32
	for i := 1; i < len(args); i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return "", err
		}
		argsFloat = append(argsFloat, float32(f))
	}
	res, err := fn(c.cmd, argsFloat)
	if err != nil {
		return "", err
	}
	var resStr []string
	for _, vv := range res {
		var resLine []string
		for _, v := range vv {
			resLine = append(resLine, formatFloat(v))
		}
		resStr = append(resStr, strings.Join(resLine, " "))
	}
	return strings.Join(resStr, "\n"), nil
}

func formatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', 3, 32)
	if s == "-0.000" {
		return "0.000"
	}
	return s
}
