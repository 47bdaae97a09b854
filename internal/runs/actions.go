package runs

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aodesk/ao-analyzer/internal/common"
	"github.com/aodesk/ao-analyzer/pkg/db"
)

// RunsAction lists stored analysis runs, or prints one in full when an ID
// argument is given.
func RunsAction(c *cli.Context) error {
	database, err := db.Open(c.String("db"))
	if err != nil {
		return err
	}
	defer database.Close()

	if id := c.Args().First(); id != "" {
		result, err := database.GetAnalysis(id)
		if err != nil {
			return err
		}
		return common.WriteOutput(os.Stdout, result, c.String("format"))
	}

	list, err := database.ListAnalyses(c.Int("limit"))
	if err != nil {
		return err
	}
	type summary struct {
		ID        string `yaml:"id" json:"id"`
		CreatedAt string `yaml:"created_at" json:"created_at"`
		Sector    string `yaml:"sector,omitempty" json:"sector,omitempty"`
		Buyer     string `yaml:"buyer,omitempty" json:"buyer,omitempty"`
		Documents int    `yaml:"documents" json:"documents"`
	}
	out := make([]summary, len(list))
	for i, s := range list {
		out[i] = summary{
			ID:        s.ID,
			CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
			Sector:    s.Sector,
			Buyer:     s.Buyer,
			Documents: s.DocumentCount,
		}
	}
	return common.WriteOutput(os.Stdout, out, c.String("format"))
}
