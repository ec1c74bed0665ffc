package core

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Args holds the values given on the command line. Threads and Size are
// nil when the corresponding option was not passed.
type Args struct {
	Threads *int
	Size    *int
	Degree  int
}

// ParseArgs parses "-t<N> -l<S> <degree>". The degree is always the last
// argument; options may carry their value inline ("-t4") or as the next
// argument ("-t 4"). args excludes the program name.
func ParseArgs(args []string) (Args, error) {
	var out Args
	if len(args) == 0 {
		return out, ErrMissingConfig("degree")
	}

	last := args[len(args)-1]
	if strings.HasPrefix(last, "-") && !isInteger(last) {
		return out, ErrMissingConfig("degree")
	}
	degree, err := strconv.Atoi(last)
	if err != nil {
		return out, ErrUnsupportedDegree(last, MinDegree, MaxDegree)
	}
	out.Degree = degree

	opts := args[:len(args)-1]
	for i := 0; i < len(opts); i++ {
		arg := opts[i]
		if len(arg) < 2 || (arg[:2] != "-t" && arg[:2] != "-l") {
			return out, ErrUnknownArgument(arg)
		}

		value := arg[2:]
		if value == "" {
			if i+1 >= len(opts) {
				return out, ErrMissingConfig("value for " + arg)
			}
			i++
			value = opts[i]
		}

		n, err := strconv.Atoi(value)
		switch arg[:2] {
		case "-t":
			if err != nil {
				return out, ErrInvalidThreads(value)
			}
			out.Threads = &n
		case "-l":
			if err != nil {
				return out, ErrInvalidSize(value)
			}
			out.Size = &n
		}
	}

	return out, nil
}

func isInteger(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// WriteUsage prints the command synopsis for prog to w.
func WriteUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s -t<threads> -l<size> <degree>\n", prog)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  -t<threads>  number of worker goroutines (>= 1), or NEWTON_THREADS\n")
	fmt.Fprintf(w, "  -l<size>     image side length in pixels (>= 2), or NEWTON_SIZE\n")
	fmt.Fprintf(w, "  <degree>     polynomial degree d of z^d - 1, %d..%d\n", MinDegree, MaxDegree)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Writes newton_attractors_x<d>.ppm and newton_convergence_x<d>.ppm.\n")
}
