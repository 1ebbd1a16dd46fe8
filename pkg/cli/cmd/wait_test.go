package cmd_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/devantler-tech/testpods/pkg/cli/cmd"
	"github.com/devantler-tech/testpods/pkg/cluster"
	"github.com/devantler-tech/testpods/pkg/config"
	"github.com/devantler-tech/testpods/pkg/defaults"
	"github.com/devantler-tech/testpods/pkg/di"
	"github.com/devantler-tech/testpods/pkg/wait"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/version"
	fakediscovery "k8s.io/client-go/discovery/fake"
	"k8s.io/client-go/kubernetes/fake"
)

func newPod(name string, ready bool, labels map[string]string) *corev1.Pod {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}

	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: config.DefaultNamespace, Labels: labels},
		Status: corev1.PodStatus{
			Phase:      corev1.PodRunning,
			Conditions: []corev1.PodCondition{{Type: corev1.PodReady, Status: status}},
		},
	}
}

func fakeCluster(objects ...runtime.Object) *cluster.Cluster {
	clientset := fake.NewClientset(objects...)
	clientset.Discovery().(*fakediscovery.FakeDiscovery).FakedServerVersion = &version.Info{GitVersion: "v1.35.0"} //nolint:forcetypeassert // fake clientset

	return &cluster.Cluster{Name: "fake", Client: clientset, AccessHost: "127.0.0.1"}
}

func run(t *testing.T, c *cluster.Cluster, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := cmd.NewRootCmd("test", "test", "test", di.ClusterSupplierModule(defaults.StaticCluster(c)))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestWait_ReadyPods(t *testing.T) {
	t.Parallel()

	c := fakeCluster(newPod("api", true, nil), newPod("worker", true, nil))

	out, err := run(t, c, "wait", "api", "worker", "--timeout=5s")
	require.NoError(t, err)

	assert.Contains(t, out, "⏳ Waiting for 2 pod(s) in default on fake...")
	assert.Contains(t, out, "ℹ strategy ReadinessProbe[timeout=5s")
	assert.Contains(t, out, "► waiting for default/api")
	assert.Contains(t, out, "✔ default/api ready after")
	assert.Contains(t, out, "✔ default/worker ready after")
	assert.Contains(t, out, "✔ 2 pod(s) ready")
}

func TestWait_Selector(t *testing.T) {
	t.Parallel()

	c := fakeCluster(newPod("orders-7d9f", true, map[string]string{"app": "orders"}))

	out, err := run(t, c, "wait", "-l", "app=orders", "--timeout=5s")
	require.NoError(t, err)

	assert.Contains(t, out, "✔ default/app=orders ready after")
}

func TestWait_NotReadyTimesOut(t *testing.T) {
	t.Parallel()

	c := fakeCluster(newPod("api", true, nil), newPod("db", false, nil))

	out, err := run(t, c, "wait", "api", "db", "--timeout=300ms", "--poll-interval=50ms")

	require.ErrorIs(t, err, cmd.ErrPodsNotReady)
	require.ErrorIs(t, err, wait.ErrTimeout)
	assert.Contains(t, err.Error(), "default/db")
	assert.NotContains(t, err.Error(), "default/api:")
	assert.Contains(t, out, "✔ default/api ready after")
	assert.Contains(t, out, "✗ ")
	assert.NotContains(t, out, "pod(s) ready")
}

func TestWait_MissingPod(t *testing.T) {
	t.Parallel()

	out, err := run(t, fakeCluster(), "wait", "ghost", "--timeout=200ms", "--poll-interval=50ms")

	require.ErrorIs(t, err, wait.ErrTimeout)
	assert.Contains(t, out, "✗ ")
}

func TestWait_ArgumentErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "no pods", args: []string{"wait"}, want: cmd.ErrNoPods},
		{name: "names and selector", args: []string{"wait", "api", "-l", "app=api"}, want: cmd.ErrNamesAndSelector},
		{name: "invalid configuration", args: []string{"wait", "api", "--strategy=log"}, want: config.ErrInvalidConfig},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, fakeCluster(), testCase.args...)
			require.ErrorIs(t, err, testCase.want)
		})
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	out, err := run(t, fakeCluster(), "discover")
	require.NoError(t, err)

	assert.Contains(t, out, "🔍 Discovering cluster...")
	assert.Contains(t, out, "ℹ server v1.35.0, access host 127.0.0.1")
	assert.Contains(t, out, "✔ using cluster fake")
}
