package pitch

// primeTable runs a Sieve of Eratosthenes over the integers 1..n and
// returns a boolean slice of length n where element i reports whether the
// harmonic number i+1 is prime.
//
// Kernel construction needs the fundamental treated as a harmonic slot
// even though 1 is not prime; includeFundamental makes that an explicit
// parameter instead of mutating index 0 after the sieve runs.
func primeTable(n int, includeFundamental bool) []bool {
	if n <= 0 {
		return nil
	}
	ps := make([]bool, n)
	for i := range ps {
		ps[i] = i >= 1 // integer 1 (index 0) starts non-prime; 2 (index 1) starts prime
	}
	for p := 2; p*p <= n; p++ {
		if !ps[p-1] {
			continue
		}
		for m := p * p; m <= n; m += p {
			ps[m-1] = false
		}
	}
	if includeFundamental && n > 0 {
		ps[0] = true
	}
	return ps
}
