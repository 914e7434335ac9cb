package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type SolverParameters3D struct {
	Title               string  `yaml:"Title"`
	Model               int     `yaml:"Model"` // 0 = Poisson, 1 = Constraint, 2 = Coupled
	GridN               int     `yaml:"GridN"`
	MaxDepth            int     `yaml:"MaxDepth"`
	NumCycles           int     `yaml:"NumCycles"`
	MaxRelaxIters       int     `yaml:"MaxRelaxIters"`
	RelaxationTolerance float64 `yaml:"RelaxationTolerance"`
	StencilOrder        int     `yaml:"StencilOrder"`
	ProcLimit           int     `yaml:"ProcLimit"`
}

func (sp *SolverParameters3D) Parse(data []byte) error {
	return yaml.Unmarshal(data, sp)
}

func (sp *SolverParameters3D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", sp.Title)
	fmt.Printf("[%d]\t\t\t= Model\n", sp.Model)
	fmt.Printf("[%d]\t\t\t= GridN\n", sp.GridN)
	fmt.Printf("[%d]\t\t\t= MaxDepth\n", sp.MaxDepth)
	fmt.Printf("[%d]\t\t\t= NumCycles\n", sp.NumCycles)
	fmt.Printf("[%d]\t\t\t= MaxRelaxIters\n", sp.MaxRelaxIters)
	fmt.Printf("%8.2e\t\t= RelaxationTolerance\n", sp.RelaxationTolerance)
	fmt.Printf("[%d]\t\t\t= StencilOrder\n", sp.StencilOrder)
}
