/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/LBJ-Wade/elliptic-solver/InputParameters"
	"github.com/LBJ-Wade/elliptic-solver/model_problems/Constraint3D"
	"github.com/LBJ-Wade/elliptic-solver/model_problems/Poisson3D"
)

// ThreeDCmd represents the 3D command
var ThreeDCmd = &cobra.Command{
	Use:   "3D",
	Short: "Three Dimensional Elliptic Model Problem Solutions",
	Long: `
Executes the FAS multigrid solver for a variety of model problems,

elliptic-solver 3D`,
	Run: func(cmd *cobra.Command, args []string) {
		m3d := &Model3D{}
		fmt.Println("3D called")
		mr, _ := cmd.Flags().GetInt("model")
		m3d.ModelRun = ModelType3D(mr)
		m3d.N, _ = cmd.Flags().GetInt("n")
		m3d.MaxDepth, _ = cmd.Flags().GetInt("depth")
		m3d.NumCycles, _ = cmd.Flags().GetInt("cycles")
		m3d.MaxRelaxIters, _ = cmd.Flags().GetInt("relaxIters")
		m3d.Tolerance, _ = cmd.Flags().GetFloat64("tol")
		m3d.StencilOrder, _ = cmd.Flags().GetInt("order")
		m3d.Profile, _ = cmd.Flags().GetBool("profile")
		if inputFile, _ := cmd.Flags().GetString("input"); len(inputFile) != 0 {
			applyInputDeck(inputFile, m3d)
		}
		Run3D(m3d)
	},
}

func init() {
	rootCmd.AddCommand(ThreeDCmd)
	ThreeDCmd.Flags().IntP("model", "m", 0, "model to run: 0 = Poisson3D, 1 = Constraint3D, 2 = Coupled fields")
	ThreeDCmd.Flags().IntP("n", "n", 32, "number of grid points per axis")
	ThreeDCmd.Flags().IntP("depth", "d", 4, "number of multigrid levels")
	ThreeDCmd.Flags().IntP("cycles", "c", 5, "number of V-cycles to run")
	ThreeDCmd.Flags().Int("relaxIters", 20, "maximum outer Newton iterations per level visit")
	ThreeDCmd.Flags().Float64("tol", 1.e-8, "residual tolerance for relaxation")
	ThreeDCmd.Flags().Int("order", 2, "finite difference stencil order: 2, 4, 6 or 8")
	ThreeDCmd.Flags().StringP("input", "i", "", "yaml input deck overriding the flags")
	ThreeDCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

type Model3D struct {
	N             int // Grid points per axis
	MaxDepth      int
	NumCycles     int
	MaxRelaxIters int
	Tolerance     float64
	StencilOrder  int
	ModelRun      ModelType3D
	Profile       bool
}

type ModelType3D uint8

const (
	M_3DPoisson ModelType3D = iota
	M_3DConstraint
	M_3DCoupled
)

type Model interface {
	Run() error
}

func applyInputDeck(fileName string, m3d *Model3D) {
	var (
		ip   = &InputParameters.SolverParameters3D{}
		data []byte
		err  error
	)
	if data, err = ioutil.ReadFile(fileName); err != nil {
		fmt.Printf("Unable to read input file named: [%s]\n", fileName)
		os.Exit(1)
	}
	if err = ip.Parse(data); err != nil {
		fmt.Printf("Unable to parse input file named: [%s]\n", fileName)
		os.Exit(1)
	}
	ip.Print()
	m3d.N = ip.GridN
	m3d.MaxDepth = ip.MaxDepth
	m3d.NumCycles = ip.NumCycles
	m3d.MaxRelaxIters = ip.MaxRelaxIters
	m3d.Tolerance = ip.RelaxationTolerance
	if ip.StencilOrder != 0 {
		m3d.StencilOrder = ip.StencilOrder
	}
	m3d.ModelRun = ModelType3D(ip.Model)
}

func Run3D(m3d *Model3D) {
	if m3d.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}
	var (
		C   Model
		err error
	)
	switch m3d.ModelRun {
	case M_3DConstraint:
		var cp *Constraint3D.Constraint
		cp, err = Constraint3D.NewConstraint(m3d.N, m3d.MaxDepth, m3d.NumCycles,
			m3d.MaxRelaxIters, m3d.Tolerance, Constraint3D.HAMILTONIAN)
		if cp != nil && m3d.StencilOrder != 0 {
			cp.FAS.StencilOrder = m3d.StencilOrder
		}
		C = cp
	case M_3DCoupled:
		var cp *Constraint3D.Constraint
		cp, err = Constraint3D.NewConstraint(m3d.N, m3d.MaxDepth, m3d.NumCycles,
			m3d.MaxRelaxIters, m3d.Tolerance, Constraint3D.COUPLED)
		if cp != nil && m3d.StencilOrder != 0 {
			cp.FAS.StencilOrder = m3d.StencilOrder
		}
		C = cp
	case M_3DPoisson:
		fallthrough
	default:
		var pp *Poisson3D.Poisson
		pp, err = Poisson3D.NewPoisson(m3d.N, m3d.MaxDepth, m3d.NumCycles,
			m3d.MaxRelaxIters, m3d.Tolerance, Poisson3D.SINUSOID)
		if pp != nil && m3d.StencilOrder != 0 {
			pp.FAS.StencilOrder = m3d.StencilOrder
		}
		C = pp
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err = C.Run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
