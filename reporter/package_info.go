// Package reporter aggregates the outcome of one test run and publishes it to TestRail.
//
// The general model is:
//
// 1. A host adapter (for instance the gotest package) drives a Controller with the
// run's lifecycle events: OnStart, then any number of OnPass/OnFail, then OnEnd.
// Events are delivered one at a time.
//
// 2. Each pass or fail is recorded by an Aggregator, which counts it and turns the case
// markers in the test title (see the caseid package) into ResultEntry values.
//
// 3. At the end of the run the Controller classifies the run by its pass ratio, sends a
// summary Notification, and publishes every ResultEntry to the TestManagementClient in
// a single batch.
//
// The TestRail and webhook transports live in their own packages; this package only
// depends on the TestManagementClient and Notifier interfaces.
package reporter
