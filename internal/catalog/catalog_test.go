package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicForJoinsBitForBit(t *testing.T) {
	require.Equal(t, "Control.EventExposureSubscription.GMLC.PERIODIC",
		EventExposureSubscriptionTopic(NFGMLC, EventPeriodic))
	require.Equal(t, "Control.EventExposureSubscription.RAN.RSRP_INFO",
		EventExposureSubscriptionTopic(NFRAN, EventRSRPInfo))
	require.Equal(t, "Data.NwdafEventDelivery.UE_LOC_THROUGHPUT",
		NwdafEventDeliveryTopic(EventUELocThroughput))
	require.Equal(t, "Control.DatasetCollectionSubscription", DatasetCollectionSubscriptionTopic())
}

func TestAllTopicsCoversEveryNF(t *testing.T) {
	topics := AllTopics()
	set := make(map[string]bool, len(topics))
	for _, tpc := range topics {
		set[tpc] = true
	}

	for _, nf := range AllNFTypes {
		event := DefaultEventForNF[nf]
		assert.True(t, set[EventExposureSubscriptionTopic(nf, event)], "missing subscription topic for %s", nf)
		assert.True(t, set[EventExposureDeliveryTopic(nf, event)], "missing delivery topic for %s", nf)
	}

	assert.True(t, set[DatasetRetrievalDeliveryTopic()])
	assert.True(t, set[MLModelProvisionSubscriptionTopic(EventUELocThroughput)])
}

func TestProjectionForFallsBackToGeneric(t *testing.T) {
	p := ProjectionFor(NFGMLC)
	require.Equal(t, "ldr_reference", p.CorrelationField)

	generic := ProjectionFor(NFUDM)
	require.Equal(t, "correlation_id", generic.CorrelationField)
	require.Equal(t, "UDMEventNotification", generic.NotificationTag)
}
