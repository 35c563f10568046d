package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jobshop-sim/jobshop-sim/sim"
)

// LoadInstance reads an instance in the standard JSP text format from path.
func LoadInstance(path string) (sim.InstanceConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return sim.InstanceConfig{}, fmt.Errorf("open instance: %w", err)
	}
	defer f.Close()
	cfg, err := ParseInstance(f)
	if err != nil {
		return sim.InstanceConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseInstance reads the standard JSP text format:
//
//	# comment lines start with '#'
//	<num_jobs> <num_machines>
//	<machine_id> <process_time> ... (num_machines pairs per job line)
//
// Blank lines are skipped, as are tokens beyond the expected pairs.
// All jobs arrive at tick 0. Failures wrap sim.ErrMalformedInput.
func ParseInstance(r io.Reader) (sim.InstanceConfig, error) {
	lines := &lineReader{scanner: bufio.NewScanner(r)}
	lines.scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	header, err := lines.next()
	if err != nil {
		return sim.InstanceConfig{}, fmt.Errorf("%w: missing header: %v", sim.ErrMalformedInput, err)
	}
	if len(header) < 2 {
		return sim.InstanceConfig{}, fmt.Errorf("%w: line %d: header needs <num_jobs> <num_machines>", sim.ErrMalformedInput, lines.lineNo)
	}
	numJobs, err := parseCount(header[0], "num_jobs", sim.MaxJobs, lines.lineNo)
	if err != nil {
		return sim.InstanceConfig{}, err
	}
	numMachines, err := parseCount(header[1], "num_machines", sim.MaxMachines, lines.lineNo)
	if err != nil {
		return sim.InstanceConfig{}, err
	}

	cfg := sim.InstanceConfig{Machines: numMachines}
	for j := 0; j < numJobs; j++ {
		fields, err := lines.next()
		if err != nil {
			return sim.InstanceConfig{}, fmt.Errorf("%w: expected %d job lines, found %d: %v", sim.ErrMalformedInput, numJobs, j, err)
		}
		if len(fields) < 2*numMachines {
			return sim.InstanceConfig{}, fmt.Errorf("%w: line %d: job %d has %d tokens, want %d",
				sim.ErrMalformedInput, lines.lineNo, j, len(fields), 2*numMachines)
		}
		job := sim.JobConfig{Ops: make([]sim.OpConfig, numMachines)}
		for k := 0; k < numMachines; k++ {
			machine, err := strconv.Atoi(fields[2*k])
			if err != nil {
				return sim.InstanceConfig{}, fmt.Errorf("%w: line %d: machine id %q", sim.ErrMalformedInput, lines.lineNo, fields[2*k])
			}
			processTime, err := strconv.ParseInt(fields[2*k+1], 10, 64)
			if err != nil {
				return sim.InstanceConfig{}, fmt.Errorf("%w: line %d: process time %q", sim.ErrMalformedInput, lines.lineNo, fields[2*k+1])
			}
			job.Ops[k] = sim.OpConfig{MachineID: machine, ProcessTime: processTime}
		}
		cfg.Jobs = append(cfg.Jobs, job)
	}

	if err := cfg.Validate(); err != nil {
		return sim.InstanceConfig{}, err
	}
	return cfg, nil
}

// WriteInstance writes cfg in the text format read by ParseInstance.
// Only instances whose jobs all arrive at tick 0 with one op per machine and no
// due dates can be expressed.
func WriteInstance(w io.Writer, cfg sim.InstanceConfig) error {
	for i, job := range cfg.Jobs {
		if job.Arrival != 0 || job.DueDate != 0 || len(job.Ops) != cfg.Machines {
			return fmt.Errorf("%w: job %d cannot be expressed in the text format (arrival=%d, due=%d, ops=%d, machines=%d)",
				sim.ErrInvalidArgument, i, job.Arrival, job.DueDate, len(job.Ops), cfg.Machines)
		}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(cfg.Jobs), cfg.Machines)
	for _, job := range cfg.Jobs {
		parts := make([]string, 0, 2*len(job.Ops))
		for _, op := range job.Ops {
			parts = append(parts, strconv.Itoa(op.MachineID), strconv.FormatInt(op.ProcessTime, 10))
		}
		fmt.Fprintln(bw, strings.Join(parts, " "))
	}
	return bw.Flush()
}

// lineReader yields the fields of non-blank, non-comment lines.
type lineReader struct {
	scanner *bufio.Scanner
	lineNo  int
}

func (l *lineReader) next() ([]string, error) {
	for l.scanner.Scan() {
		l.lineNo++
		line := strings.TrimSpace(l.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Fields(line), nil
	}
	if err := l.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.ErrUnexpectedEOF
}

// parseCount parses a header count in [0, limit].
func parseCount(tok, name string, limit, lineNo int) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: line %d: %s %q is not a non-negative integer", sim.ErrMalformedInput, lineNo, name, tok)
	}
	if n > limit {
		return 0, fmt.Errorf("%w: line %d: %s %d exceeds the limit of %d", sim.ErrMalformedInput, lineNo, name, n, limit)
	}
	return n, nil
}
