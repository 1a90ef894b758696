package jobs

// Job is run by a daemon until the daemon stops. Stop must make a running Process return and
// any later Process return immediately.
type Job interface {
	Process()
	Stop()
}
