package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"svw.info/polygen/internal/adapters/tui"
	"svw.info/polygen/internal/codec"
	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/render"
	"svw.info/polygen/internal/session"
)

var (
	outPath string

	rotateAxis string
	rotateDir  string

	solveLimit int
	solveCount bool

	genFamily string
	genSeed   int64

	exportXLSX bool
	exportURL  string

	validateIndex int
)

var viewCmd = &cobra.Command{
	Use:   "view FILE",
	Short: "Open a puzzle in the terminal viewer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readPuzzle(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		return tui.New(screen, session.New(p), logger).Run()
	},
}

var rotateCmd = &cobra.Command{
	Use:   "rotate FILE",
	Short: "Turn a puzzle a quarter turn and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readPuzzle(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		axis, err := domain.ParseAxis(rotateAxis)
		if err != nil {
			return err
		}
		dir := domain.Right
		if axis == domain.Vertical {
			dir = domain.Up
		}
		if rotateDir != "" {
			if dir, err = domain.ParseDirection(rotateDir); err != nil {
				return err
			}
		}
		uc := newService()
		out := uc.Rotate(p, axis, dir)
		return writeOutput(outPath, cmd.OutOrStdout(), func(w io.Writer) error { return codec.Encode(w, out) })
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve FILE",
	Short: "Find solutions and add them to the puzzle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readPuzzle(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		uc := newService()
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetSolverTimeout())
		defer cancel()

		if solveCount {
			limit := solveLimit
			if !cmd.Flags().Changed("limit") {
				limit = cfg.Solver.CountLimit
			}
			n, st, err := uc.Count(ctx, p, limit)
			if err != nil {
				return err
			}
			logger.Info("counted", zap.Int("solutions", n), zap.Int("nodes", st.Nodes), zap.Duration("dur", st.Duration))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		}

		limit := solveLimit
		if limit <= 0 {
			limit = 1
		}
		added, st, err := uc.SolveInto(ctx, p, limit)
		if err != nil {
			return err
		}
		logger.Info("solved", zap.Int("added", added), zap.Int("nodes", st.Nodes), zap.Duration("dur", st.Duration))
		if outPath == "" {
			w := cmd.OutOrStdout()
			for i, s := range p.Solutions[len(p.Solutions)-added:] {
				fmt.Fprintf(w, "solution %d\n%s", i+1, render.Layers(s.Value))
			}
			return nil
		}
		return writeOutput(outPath, cmd.OutOrStdout(), func(w io.Writer) error { return codec.Encode(w, p) })
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random puzzle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := domain.ParseFamily(genFamily)
		if err != nil {
			return err
		}
		seed := genSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		uc := newService()
		p, st, err := uc.Generate(cmd.Context(), seed, f)
		if err != nil {
			return err
		}
		logger.Info("generated",
			zap.String("name", p.Name),
			zap.Int64("seed", seed),
			zap.String("difficulty", p.Difficulty.String()),
			zap.Int("nodes", st.Nodes),
			zap.Duration("dur", st.Duration))
		return writeOutput(outPath, cmd.OutOrStdout(), func(w io.Writer) error { return codec.Encode(w, p) })
	},
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export a puzzle as a spreadsheet or a share link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readPuzzle(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		switch {
		case exportXLSX:
			uc := newService()
			return writeOutput(outPath, cmd.OutOrStdout(), func(w io.Writer) error { return uc.Export(w, p) })
		case exportURL != "":
			u, err := codec.ShareURL(exportURL, p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
			return err
		}
		return fmt.Errorf("choose --xlsx or --url BASE")
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a stored solution against its puzzle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readPuzzle(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		if validateIndex < 0 || validateIndex >= len(p.Solutions) {
			return fmt.Errorf("solution %d out of range (puzzle has %d)", validateIndex, len(p.Solutions))
		}
		uc := newService()
		ok, conflicts, err := uc.Validate(cmd.Context(), p, &p.Solutions[validateIndex])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if ok {
			_, err = fmt.Fprintln(w, "ok")
			return err
		}
		for _, c := range conflicts {
			fmt.Fprintf(w, "conflict h=%d l=%d w=%d\n", c.H, c.L, c.W)
		}
		return fmt.Errorf("%w: %d conflicting cells", domain.ErrInvalidPuzzle, len(conflicts))
	},
}

func init() {
	for _, c := range []*cobra.Command{rotateCmd, solveCmd, generateCmd, exportCmd} {
		c.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	}
	rotateCmd.Flags().StringVar(&rotateAxis, "axis", "horizontal", "horizontal|vertical")
	rotateCmd.Flags().StringVar(&rotateDir, "dir", "", "left|right for horizontal, up|down for vertical")
	solveCmd.Flags().IntVar(&solveLimit, "limit", 1, "solutions to find (with --count: 0 for all, default solver.count_limit)")
	solveCmd.Flags().BoolVar(&solveCount, "count", false, "only count solutions")
	generateCmd.Flags().StringVar(&genFamily, "family", "soma", "soma|pentomino")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 picks one)")
	exportCmd.Flags().BoolVar(&exportXLSX, "xlsx", false, "write an .xlsx workbook")
	exportCmd.Flags().StringVar(&exportURL, "url", "", "print a share link rooted at this base URL")
	validateCmd.Flags().IntVar(&validateIndex, "solution", 0, "solution index")
}
