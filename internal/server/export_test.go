package server

// LockCount returns the number of hostnames holding a lock entry
func (s *ServerService) LockCount() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.locks)
}
